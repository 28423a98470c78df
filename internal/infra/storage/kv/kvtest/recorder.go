// Package kvtest содержит обертки над хранилищем для тестов
package kvtest

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv/memory"
)

// Operation имя операции хранилища
type Operation string

const (
	OpGet           Operation = "get"
	OpPut           Operation = "put"
	OpPutIfAbsent   Operation = "put_if_absent"
	OpDelete        Operation = "delete"
	OpQueryByPrefix Operation = "query"
	OpWriteBatch    Operation = "write_batch"
)

// Call одна операция, прошедшая через Recorder
type Call struct {
	Op  Operation
	Key kv.Key
}

// FailFunc решает, должна ли операция завершиться ошибкой
type FailFunc func(call Call) error

// Recorder обертка над хранилищем, запоминающая вызовы.
// Умеет отключать батчи и подмешивать ошибки.
type Recorder struct {
	next kv.Store

	mu      sync.Mutex
	calls   []Call
	noBatch bool
	fail    FailFunc
}

// NewRecorder оборачивает новое in-memory хранилище
func NewRecorder() *Recorder {
	return Wrap(memory.NewStore())
}

// Wrap оборачивает произвольное хранилище
func Wrap(next kv.Store) *Recorder {
	return &Recorder{next: next}
}

// DisableBatch заставляет WriteBatch возвращать kv.ErrBatchUnsupported
func (r *Recorder) DisableBatch() *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.noBatch = true
	return r
}

// FailWith включает подмешивание ошибок (nil - выключает)
func (r *Recorder) FailWith(fail FailFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = fail
}

// Calls возвращает копию журнала вызовов
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Count возвращает число вызовов операции
func (r *Recorder) Count(op Operation) int {
	n := 0
	for _, c := range r.Calls() {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset очищает журнал вызовов
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *Recorder) record(op Operation, pk, sk string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	call := Call{Op: op, Key: kv.Key{PK: pk, SK: sk}}
	r.calls = append(r.calls, call)
	if r.fail != nil {
		return r.fail(call)
	}
	return nil
}

func (r *Recorder) Get(ctx context.Context, pk, sk string) (*kv.Item, error) {
	if err := r.record(OpGet, pk, sk); err != nil {
		return nil, err
	}
	return r.next.Get(ctx, pk, sk)
}

func (r *Recorder) Put(ctx context.Context, item kv.Item) error {
	if err := r.record(OpPut, item.PK, item.SK); err != nil {
		return err
	}
	return r.next.Put(ctx, item)
}

func (r *Recorder) PutIfAbsent(ctx context.Context, item kv.Item) (bool, error) {
	if err := r.record(OpPutIfAbsent, item.PK, item.SK); err != nil {
		return false, err
	}
	return r.next.PutIfAbsent(ctx, item)
}

func (r *Recorder) Delete(ctx context.Context, pk, sk string) error {
	if err := r.record(OpDelete, pk, sk); err != nil {
		return err
	}
	return r.next.Delete(ctx, pk, sk)
}

func (r *Recorder) QueryByPrefix(ctx context.Context, pk, skPrefix string) ([]kv.Item, error) {
	if err := r.record(OpQueryByPrefix, pk, skPrefix); err != nil {
		return nil, err
	}
	return r.next.QueryByPrefix(ctx, pk, skPrefix)
}

func (r *Recorder) WriteBatch(ctx context.Context, puts []kv.Item, deletes []kv.Key) error {
	if err := r.record(OpWriteBatch, "", ""); err != nil {
		return err
	}
	r.mu.Lock()
	noBatch := r.noBatch
	r.mu.Unlock()
	if noBatch {
		return kv.ErrBatchUnsupported
	}
	return r.next.WriteBatch(ctx, puts, deletes)
}

func (r *Recorder) Close(ctx context.Context) error {
	return r.next.Close(ctx)
}
