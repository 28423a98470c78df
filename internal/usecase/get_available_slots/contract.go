package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/domain"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv"
)

// Store часть хранилища, нужная для расчета свободных слотов
type Store interface {
	QueryByPrefix(ctx context.Context, pk, skPrefix string) ([]kv.Item, error)
}

// ScheduleResolver возвращает часы работы мастерской
type ScheduleResolver interface {
	Resolve(ctx context.Context, shopID string) (domain.ScheduleConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
