package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv"
)

// Store хранилище в памяти процесса. Используется в тестах и для локального запуска
type Store struct {
	mu         sync.RWMutex
	partitions map[string]map[string]kv.Item
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{partitions: make(map[string]map[string]kv.Item)}
}

func (s *Store) Get(_ context.Context, pk, sk string) (*kv.Item, error) {
	if err := kv.ValidateKey(pk, sk); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.partitions[pk][sk]
	if !ok {
		return nil, kv.ErrItemNotFound
	}
	clone := item.Clone()
	return &clone, nil
}

func (s *Store) Put(_ context.Context, item kv.Item) error {
	if err := kv.ValidateKey(item.PK, item.SK); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.putLocked(item)
	return nil
}

func (s *Store) PutIfAbsent(_ context.Context, item kv.Item) (bool, error) {
	if err := kv.ValidateKey(item.PK, item.SK); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.partitions[item.PK][item.SK]; exists {
		return false, nil
	}
	s.putLocked(item)
	return true, nil
}

func (s *Store) Delete(_ context.Context, pk, sk string) error {
	if err := kv.ValidateKey(pk, sk); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleteLocked(pk, sk)
	return nil
}

func (s *Store) QueryByPrefix(_ context.Context, pk, skPrefix string) ([]kv.Item, error) {
	if pk == "" {
		return nil, kv.ErrInvalidKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]kv.Item, 0)
	for sk, item := range s.partitions[pk] {
		if strings.HasPrefix(sk, skPrefix) {
			items = append(items, item.Clone())
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].SK < items[j].SK })
	return items, nil
}

// WriteBatch применяет все изменения под одной блокировкой
func (s *Store) WriteBatch(_ context.Context, puts []kv.Item, deletes []kv.Key) error {
	for _, item := range puts {
		if err := kv.ValidateKey(item.PK, item.SK); err != nil {
			return err
		}
	}
	for _, key := range deletes {
		if err := kv.ValidateKey(key.PK, key.SK); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range puts {
		s.putLocked(item)
	}
	for _, key := range deletes {
		s.deleteLocked(key.PK, key.SK)
	}
	return nil
}

// Len возвращает общее число записей
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, partition := range s.partitions {
		n += len(partition)
	}
	return n
}

func (s *Store) Close(context.Context) error {
	return nil
}

func (s *Store) putLocked(item kv.Item) {
	partition, ok := s.partitions[item.PK]
	if !ok {
		partition = make(map[string]kv.Item)
		s.partitions[item.PK] = partition
	}
	partition[item.SK] = item.Clone()
}

func (s *Store) deleteLocked(pk, sk string) {
	partition, ok := s.partitions[pk]
	if !ok {
		return
	}
	delete(partition, sk)
	if len(partition) == 0 {
		delete(s.partitions, pk)
	}
}
