package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv"
)

// DefaultKeyPrefix префикс ключей Redis по умолчанию
const DefaultKeyPrefix = "kv"

// Store бэкенд хранилища поверх Redis.
// Партиция - hash (поле = ключ сортировки, значение = JSON атрибутов)
// плюс sorted set с нулевыми весами для лексикографических выборок по префиксу.
type Store struct {
	client    goredis.UniversalClient
	keyPrefix string
}

// NewStore создает бэкенд поверх готового клиента
func NewStore(client goredis.UniversalClient, keyPrefix string) *Store {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &Store{client: client, keyPrefix: keyPrefix}
}

// hashKey hash-тег {pk} держит обе структуры партиции в одном слоте кластера
func (s *Store) hashKey(pk string) string {
	return s.keyPrefix + ":{" + pk + "}"
}

func (s *Store) indexKey(pk string) string {
	return s.hashKey(pk) + ":idx"
}

func (s *Store) Get(ctx context.Context, pk, sk string) (*kv.Item, error) {
	if err := kv.ValidateKey(pk, sk); err != nil {
		return nil, err
	}

	raw, err := s.client.HGet(ctx, s.hashKey(pk), sk).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, kv.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: redis hget: %v", kv.ErrBackend, err)
	}

	return decodeItem(pk, sk, raw)
}

func (s *Store) Put(ctx context.Context, item kv.Item) error {
	if err := kv.ValidateKey(item.PK, item.SK); err != nil {
		return err
	}

	payload, err := encodeAttrs(item.Attrs)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		s.queuePut(ctx, pipe, item, payload)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: redis put: %v", kv.ErrBackend, err)
	}
	return nil
}

func (s *Store) PutIfAbsent(ctx context.Context, item kv.Item) (bool, error) {
	if err := kv.ValidateKey(item.PK, item.SK); err != nil {
		return false, err
	}

	payload, err := encodeAttrs(item.Attrs)
	if err != nil {
		return false, err
	}

	var created *goredis.BoolCmd
	_, err = s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		created = pipe.HSetNX(ctx, s.hashKey(item.PK), item.SK, payload)
		// ZADD существующего члена с тем же весом ничего не меняет
		pipe.ZAdd(ctx, s.indexKey(item.PK), goredis.Z{Score: 0, Member: item.SK})
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%w: redis hsetnx: %v", kv.ErrBackend, err)
	}

	return created.Val(), nil
}

func (s *Store) Delete(ctx context.Context, pk, sk string) error {
	if err := kv.ValidateKey(pk, sk); err != nil {
		return err
	}

	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		s.queueDelete(ctx, pipe, kv.Key{PK: pk, SK: sk})
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: redis delete: %v", kv.ErrBackend, err)
	}
	return nil
}

func (s *Store) QueryByPrefix(ctx context.Context, pk, skPrefix string) ([]kv.Item, error) {
	if pk == "" {
		return nil, kv.ErrInvalidKey
	}

	min, max := lexRange(skPrefix)
	sortKeys, err := s.client.ZRangeByLex(ctx, s.indexKey(pk), &goredis.ZRangeBy{Min: min, Max: max}).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: redis zrangebylex: %v", kv.ErrBackend, err)
	}
	if len(sortKeys) == 0 {
		return []kv.Item{}, nil
	}

	values, err := s.client.HMGet(ctx, s.hashKey(pk), sortKeys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: redis hmget: %v", kv.ErrBackend, err)
	}

	items := make([]kv.Item, 0, len(sortKeys))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			// индекс отстал от hash - записи уже нет
			continue
		}
		item, err := decodeItem(pk, sortKeys[i], raw)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	return items, nil
}

// WriteBatch выполняет все изменения в одной транзакции MULTI/EXEC
func (s *Store) WriteBatch(ctx context.Context, puts []kv.Item, deletes []kv.Key) error {
	payloads := make([]string, len(puts))
	for i, item := range puts {
		if err := kv.ValidateKey(item.PK, item.SK); err != nil {
			return err
		}
		payload, err := encodeAttrs(item.Attrs)
		if err != nil {
			return err
		}
		payloads[i] = payload
	}
	for _, key := range deletes {
		if err := kv.ValidateKey(key.PK, key.SK); err != nil {
			return err
		}
	}

	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for i, item := range puts {
			s.queuePut(ctx, pipe, item, payloads[i])
		}
		for _, key := range deletes {
			s.queueDelete(ctx, pipe, key)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: redis batch: %v", kv.ErrBackend, err)
	}
	return nil
}

func (s *Store) Close(context.Context) error {
	return s.client.Close()
}

func (s *Store) queuePut(ctx context.Context, pipe goredis.Pipeliner, item kv.Item, payload string) {
	pipe.HSet(ctx, s.hashKey(item.PK), item.SK, payload)
	pipe.ZAdd(ctx, s.indexKey(item.PK), goredis.Z{Score: 0, Member: item.SK})
}

func (s *Store) queueDelete(ctx context.Context, pipe goredis.Pipeliner, key kv.Key) {
	pipe.HDel(ctx, s.hashKey(key.PK), key.SK)
	pipe.ZRem(ctx, s.indexKey(key.PK), key.SK)
}

// lexRange границы ZRANGEBYLEX для всех членов, начинающихся с prefix
func lexRange(prefix string) (string, string) {
	if prefix == "" {
		return "-", "+"
	}
	return "[" + prefix, "[" + prefix + "\xff"
}

func encodeAttrs(attrs map[string]string) (string, error) {
	if attrs == nil {
		attrs = map[string]string{}
	}
	data, err := json.Marshal(attrs)
	if err != nil {
		return "", fmt.Errorf("%w: encode attributes: %v", kv.ErrBackend, err)
	}
	return string(data), nil
}

func decodeItem(pk, sk, raw string) (*kv.Item, error) {
	item := &kv.Item{PK: pk, SK: sk, Attrs: make(map[string]string)}
	if err := json.Unmarshal([]byte(raw), &item.Attrs); err != nil {
		return nil, fmt.Errorf("%w: decode attributes of %s/%s: %v", kv.ErrBackend, pk, sk, err)
	}
	return item, nil
}
