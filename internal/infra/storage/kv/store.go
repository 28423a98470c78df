package kv

import "context"

// Store полный контракт бэкенда хранилища.
// Все операции строго консистентны в пределах партиции.
type Store interface {
	Get(ctx context.Context, pk, sk string) (*Item, error)
	Put(ctx context.Context, item Item) error
	// PutIfAbsent создает запись, только если ключ свободен. created=false - ключ уже занят
	PutIfAbsent(ctx context.Context, item Item) (created bool, err error)
	Delete(ctx context.Context, pk, sk string) error
	// QueryByPrefix возвращает записи партиции, чей ключ сортировки начинается с prefix, по возрастанию ключа
	QueryByPrefix(ctx context.Context, pk, skPrefix string) ([]Item, error)
	// WriteBatch атомарно применяет puts и deletes либо возвращает ErrBatchUnsupported
	WriteBatch(ctx context.Context, puts []Item, deletes []Key) error
	Close(ctx context.Context) error
}
