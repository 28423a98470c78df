package kv

import (
	"context"
	"time"
)

// Timeout декоратор, ограничивающий время каждой операции с хранилищем
type Timeout struct {
	next    Store
	timeout time.Duration
}

// NewTimeout оборачивает store. timeout <= 0 - без ограничения
func NewTimeout(next Store, timeout time.Duration) Store {
	if timeout <= 0 {
		return next
	}
	return &Timeout{next: next, timeout: timeout}
}

func (t *Timeout) Get(ctx context.Context, pk, sk string) (*Item, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Get(ctx, pk, sk)
}

func (t *Timeout) Put(ctx context.Context, item Item) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Put(ctx, item)
}

func (t *Timeout) PutIfAbsent(ctx context.Context, item Item) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.PutIfAbsent(ctx, item)
}

func (t *Timeout) Delete(ctx context.Context, pk, sk string) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Delete(ctx, pk, sk)
}

func (t *Timeout) QueryByPrefix(ctx context.Context, pk, skPrefix string) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.QueryByPrefix(ctx, pk, skPrefix)
}

func (t *Timeout) WriteBatch(ctx context.Context, puts []Item, deletes []Key) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.WriteBatch(ctx, puts, deletes)
}

func (t *Timeout) Close(ctx context.Context) error {
	return t.next.Close(ctx)
}
