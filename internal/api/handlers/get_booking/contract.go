package get_booking

import (
	"context"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/service/reservations/models"
)

type ReservationService interface {
	GetByID(ctx context.Context, shopID, appointmentID string) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
