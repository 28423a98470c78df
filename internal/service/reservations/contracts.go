package reservations

import (
	"context"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv"
)

// Store часть хранилища, нужная для чтения представлений
type Store interface {
	Get(ctx context.Context, pk, sk string) (*kv.Item, error)
	QueryByPrefix(ctx context.Context, pk, skPrefix string) ([]kv.Item, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
