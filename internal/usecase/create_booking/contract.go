package create_booking

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/domain"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/events"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv"
)

// Store часть хранилища, нужная для создания записи
type Store interface {
	Put(ctx context.Context, item kv.Item) error
	PutIfAbsent(ctx context.Context, item kv.Item) (bool, error)
	Delete(ctx context.Context, pk, sk string) error
	QueryByPrefix(ctx context.Context, pk, skPrefix string) ([]kv.Item, error)
	WriteBatch(ctx context.Context, puts []kv.Item, deletes []kv.Key) error
}

// ScheduleResolver возвращает часы работы мастерской
type ScheduleResolver interface {
	Resolve(ctx context.Context, shopID string) (domain.ScheduleConfig, error)
}

// IDGenerator генерирует идентификаторы записей
type IDGenerator interface {
	NewID() string
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

// UUIDGenerator генерирует ID вида "A-1F3C9B2E" из случайного UUID (32 бита энтропии)
type UUIDGenerator struct{}

// NewID возвращает новый идентификатор записи
func (UUIDGenerator) NewID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return domain.AppointmentIDPrefix + strings.ToUpper(raw[:domain.AppointmentIDLength])
}
