package dispatcher

import (
	"context"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/domain"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/usecase/cancel_booking"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/usecase/create_booking"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/usecase/get_available_slots"
)

// CreateBookingUseCase создание записи
type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// CancelBookingUseCase отмена записи
type CancelBookingUseCase interface {
	Execute(ctx context.Context, req *cancel_booking.Request) (*cancel_booking.Response, error)
}

// GetAvailableSlotsUseCase свободные слоты на дату
type GetAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

// ScheduleResolver часы работы мастерской
type ScheduleResolver interface {
	Resolve(ctx context.Context, shopID string) (domain.ScheduleConfig, error)
}

// MetricsCollector учет результатов обработки интентов
type MetricsCollector interface {
	IncIntentOutcome(intent, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
