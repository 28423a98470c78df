package cancel_booking

import (
	cancelBooking "github.com/m04kA/SMC-WorkshopAppointments/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model: appointmentId либо phone + date
type CancelBookingRequest struct {
	ShopID        string `json:"shopId,omitempty"`
	AppointmentID string `json:"appointmentId,omitempty"`
	CustomerPhone string `json:"phone,omitempty"`
	Date          string `json:"date,omitempty"`
}

// CancelledBooking отмененная запись
type CancelledBooking struct {
	AppointmentID string `json:"appointmentId"`
	ShopID        string `json:"shopId"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	CustomerPhone string `json:"phone"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Cancelled      []CancelledBooking `json:"cancelled"`
	RemovedRecords int                `json:"removedRecords"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest() *cancelBooking.Request {
	return &cancelBooking.Request{
		ShopID:        r.ShopID,
		AppointmentID: r.AppointmentID,
		CustomerPhone: r.CustomerPhone,
		Date:          r.Date,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	cancelled := make([]CancelledBooking, 0, len(resp.Reservations))
	for _, r := range resp.Reservations {
		cancelled = append(cancelled, CancelledBooking{
			AppointmentID: r.AppointmentID,
			ShopID:        r.ShopID,
			Date:          r.Date,
			Time:          r.Time.String(),
			CustomerPhone: r.CustomerPhone,
		})
	}
	return &CancelBookingResponse{
		Cancelled:      cancelled,
		RemovedRecords: resp.RemovedRecords,
	}
}
