package schedule

import (
	"context"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv"
)

// Store часть хранилища, нужная сервису расписания
type Store interface {
	Get(ctx context.Context, pk, sk string) (*kv.Item, error)
	Put(ctx context.Context, item kv.Item) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
