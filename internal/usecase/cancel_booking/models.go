package cancel_booking

import "github.com/m04kA/SMC-WorkshopAppointments/internal/domain"

// Request модель запроса на отмену записи.
// Либо AppointmentID (телефон - дополнительно), либо телефон + дата.
type Request struct {
	ShopID        string `validate:"omitempty,max=64"`                                              // Мастерская для поиска по ID (по умолчанию "Main")
	AppointmentID string `validate:"omitempty,max=64"`                                              // ID записи (A-XXXXXXXX)
	CustomerPhone string `validate:"required_without=AppointmentID,omitempty,max=32,excludesall=#"` // Телефон клиента
	Date          string `validate:"required_without=AppointmentID,omitempty,datetime=2006-01-02"`  // Дата YYYY-MM-DD
}

// Response модель ответа об отмене
type Response struct {
	// Reservations отмененные записи (по одной на ID)
	Reservations []*domain.Reservation
	// RemovedRecords сколько записей хранилища удалено (представления и гаранты слота)
	RemovedRecords int
}
