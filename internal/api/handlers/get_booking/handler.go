package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/service/reservations"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgNotFound             = "запись не найдена"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/{shopId}/bookings/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	shopID := vars["shopId"]
	appointmentID := vars["appointmentId"]

	result, err := h.service.GetByID(r.Context(), shopID, appointmentID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /shops/{id}/bookings/{id} - Invalid appointment ID: %q", appointmentID)
			handlers.RespondBadRequest(w, msgInvalidAppointmentID)

		case errors.Is(err, reservations.ErrNotFound):
			h.logger.Warn("GET /shops/{id}/bookings/{id} - Booking not found: shop=%q, id=%q", shopID, appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /shops/{id}/bookings/{id} - Failed to get booking: id=%q, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/{id}/bookings/{id} - Booking retrieved successfully: id=%s", result.AppointmentID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
