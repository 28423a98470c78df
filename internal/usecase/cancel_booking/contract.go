package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/events"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv"
)

// Store часть хранилища, нужная для отмены записи
type Store interface {
	Get(ctx context.Context, pk, sk string) (*kv.Item, error)
	Delete(ctx context.Context, pk, sk string) error
	QueryByPrefix(ctx context.Context, pk, skPrefix string) ([]kv.Item, error)
	WriteBatch(ctx context.Context, puts []kv.Item, deletes []kv.Key) error
}

// EventPublisher публикует события о записях
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
