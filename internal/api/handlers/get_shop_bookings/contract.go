package get_shop_bookings

import (
	"context"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/service/reservations/models"
)

type ReservationService interface {
	ListByShop(ctx context.Context, shopID, date string) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
