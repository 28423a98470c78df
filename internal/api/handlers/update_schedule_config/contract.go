package update_schedule_config

import (
	"context"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/domain"
)

type ScheduleService interface {
	SetHours(ctx context.Context, cfg domain.ScheduleConfig) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
