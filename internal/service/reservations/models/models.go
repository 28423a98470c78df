package models

import "github.com/m04kA/SMC-WorkshopAppointments/internal/domain"

// Response модели

// ReservationResponse запись на обслуживание
type ReservationResponse struct {
	AppointmentID string `json:"appointmentId"`
	ShopID        string `json:"shopId"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Service       string `json:"service"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"phone"`
	VehiclePlate  string `json:"vehiclePlate"`
}

// ReservationListResponse список записей
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Total        int                   `json:"total"`
}

// AuditReport расхождения между представлениями мастерской и клиента за день
type AuditReport struct {
	ShopID string `json:"shopId"`
	Date   string `json:"date"`
	// MissingCustomerView записи мастерской без парной записи клиента
	MissingCustomerView []ReservationResponse `json:"missingCustomerView"`
	// MissingShopView записи клиента без парной записи мастерской
	MissingShopView []ReservationResponse `json:"missingShopView"`
	Checked         int                   `json:"checked"`
}

// Consistent возвращает true, если расхождений нет
func (r *AuditReport) Consistent() bool {
	return len(r.MissingCustomerView) == 0 && len(r.MissingShopView) == 0
}

// Конвертеры

// FromDomainReservation конвертирует domain.Reservation в ReservationResponse
func FromDomainReservation(r *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		AppointmentID: r.AppointmentID,
		ShopID:        r.ShopID,
		Date:          r.Date,
		Time:          r.Time.String(),
		Service:       r.Service,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		VehiclePlate:  r.VehiclePlate,
	}
}

// FromDomainReservations конвертирует список записей
func FromDomainReservations(list []*domain.Reservation) *ReservationListResponse {
	out := make([]ReservationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, FromDomainReservation(r))
	}
	return &ReservationListResponse{Reservations: out, Total: len(out)}
}
