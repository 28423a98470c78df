package get_schedule_config

import (
	"context"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/domain"
)

type ScheduleService interface {
	Resolve(ctx context.Context, shopID string) (domain.ScheduleConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
