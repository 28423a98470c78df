package kv

import (
	"context"
	"errors"
	"time"
)

// MetricsCollector собирает метрики операций с хранилищем
type MetricsCollector interface {
	ObserveStoreOperation(backend, operation string, duration time.Duration, err error)
}

// Metered декоратор хранилища, снимающий латентность и ошибки каждой операции.
// ErrItemNotFound и ErrBatchUnsupported ошибками не считаются.
type Metered struct {
	next    Store
	backend string
	metrics MetricsCollector
}

// NewMetered оборачивает store сбором метрик
func NewMetered(next Store, backend string, metrics MetricsCollector) *Metered {
	return &Metered{next: next, backend: backend, metrics: metrics}
}

func (m *Metered) observe(operation string, start time.Time, err error) {
	if errors.Is(err, ErrItemNotFound) || errors.Is(err, ErrBatchUnsupported) {
		err = nil
	}
	m.metrics.ObserveStoreOperation(m.backend, operation, time.Since(start), err)
}

func (m *Metered) Get(ctx context.Context, pk, sk string) (*Item, error) {
	start := time.Now()
	item, err := m.next.Get(ctx, pk, sk)
	m.observe("get", start, err)
	return item, err
}

func (m *Metered) Put(ctx context.Context, item Item) error {
	start := time.Now()
	err := m.next.Put(ctx, item)
	m.observe("put", start, err)
	return err
}

func (m *Metered) PutIfAbsent(ctx context.Context, item Item) (bool, error) {
	start := time.Now()
	created, err := m.next.PutIfAbsent(ctx, item)
	m.observe("put_if_absent", start, err)
	return created, err
}

func (m *Metered) Delete(ctx context.Context, pk, sk string) error {
	start := time.Now()
	err := m.next.Delete(ctx, pk, sk)
	m.observe("delete", start, err)
	return err
}

func (m *Metered) QueryByPrefix(ctx context.Context, pk, skPrefix string) ([]Item, error) {
	start := time.Now()
	items, err := m.next.QueryByPrefix(ctx, pk, skPrefix)
	m.observe("query", start, err)
	return items, err
}

func (m *Metered) WriteBatch(ctx context.Context, puts []Item, deletes []Key) error {
	start := time.Now()
	err := m.next.WriteBatch(ctx, puts, deletes)
	m.observe("write_batch", start, err)
	return err
}

func (m *Metered) Close(ctx context.Context) error {
	return m.next.Close(ctx)
}
