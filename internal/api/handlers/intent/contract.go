package intent

import (
	"context"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/domain"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, intent domain.Intent) *domain.Response
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
