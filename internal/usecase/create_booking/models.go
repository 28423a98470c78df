package create_booking

import (
	"github.com/m04kA/SMC-WorkshopAppointments/internal/domain"
	"github.com/m04kA/SMC-WorkshopAppointments/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ShopID        string `validate:"omitempty,max=64"`              // Мастерская (по умолчанию "Main")
	Service       string `validate:"omitempty,max=128"`             // Услуга (по умолчанию "Mantenimiento")
	Date          string `validate:"required,datetime=2006-01-02"`  // Дата YYYY-MM-DD
	Time          string `validate:"required,datetime=15:04"`       // Время H:MM или HH:MM
	CustomerName  string `validate:"omitempty,max=128"`             // Имя клиента (по умолчанию "Cliente")
	CustomerPhone string `validate:"required,max=32,excludesall=#"` // Телефон клиента
	VehiclePlate  string `validate:"omitempty,max=32"`              // Госномер (по умолчанию "-")
}

// Response модель ответа с созданной записью
type Response struct {
	AppointmentID string
	ShopID        string
	Service       string
	Date          string
	Time          types.TimeString
	CustomerName  string
	CustomerPhone string
	VehiclePlate  string
}

func responseFromReservation(r *domain.Reservation) *Response {
	return &Response{
		AppointmentID: r.AppointmentID,
		ShopID:        r.ShopID,
		Service:       r.Service,
		Date:          r.Date,
		Time:          r.Time,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		VehiclePlate:  r.VehiclePlate,
	}
}
