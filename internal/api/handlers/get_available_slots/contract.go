package get_available_slots

import (
	"context"

	getAvailableSlots "github.com/m04kA/SMC-WorkshopAppointments/internal/usecase/get_available_slots"
)

// AvailabilityEngine раскладывает сетку слотов дня на свободные и занятые
type AvailabilityEngine interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
