package create_booking

import (
	"context"

	createBooking "github.com/m04kA/SMC-WorkshopAppointments/internal/usecase/create_booking"
)

// BookingEngine бронирует слот и пишет оба представления записи
type BookingEngine interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

// Logger Info - успешная запись, Warn - отказ клиенту, Error - сбой хранилища
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
