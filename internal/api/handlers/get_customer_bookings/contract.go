package get_customer_bookings

import (
	"context"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/service/reservations/models"
)

type ReservationService interface {
	ListByCustomer(ctx context.Context, phone string) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
