package get_customer_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/service/reservations"
)

const (
	msgInvalidPhone = "некорректный номер телефона"
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

// Handle GET /api/v1/customers/{phone}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	phone := mux.Vars(r)["phone"]

	result, err := h.service.ListByCustomer(r.Context(), phone)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /customers/{phone}/bookings - Invalid phone: %q", phone)
			handlers.RespondBadRequest(w, msgInvalidPhone)

		default:
			h.logger.Error("GET /customers/{phone}/bookings - Failed to get bookings: phone=%q, error=%v", phone, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /customers/{phone}/bookings - Bookings retrieved successfully: phone=%s, count=%d",
		phone, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
