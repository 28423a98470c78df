package create_booking

import (
	createBooking "github.com/m04kA/SMC-WorkshopAppointments/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ShopID        string `json:"shopId,omitempty"`
	Service       string `json:"service,omitempty"`
	Date          string `json:"date"` // "2024-05-01"
	Time          string `json:"time"` // "10:00"
	CustomerName  string `json:"customerName,omitempty"`
	CustomerPhone string `json:"phone"`
	VehiclePlate  string `json:"vehiclePlate,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	AppointmentID string `json:"appointmentId"`
	ShopID        string `json:"shopId"`
	Service       string `json:"service"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"phone"`
	VehiclePlate  string `json:"vehiclePlate"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Формат даты и времени проверяет сам use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		ShopID:        r.ShopID,
		Service:       r.Service,
		Date:          r.Date,
		Time:          r.Time,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		VehiclePlate:  r.VehiclePlate,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		AppointmentID: resp.AppointmentID,
		ShopID:        resp.ShopID,
		Service:       resp.Service,
		Date:          resp.Date,
		Time:          resp.Time.String(),
		CustomerName:  resp.CustomerName,
		CustomerPhone: resp.CustomerPhone,
		VehiclePlate:  resp.VehiclePlate,
	}
}
