package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-WorkshopAppointments/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingFields      = "дата, время и телефон обязательны"
	msgInvalidFormat      = "некорректный формат: дата YYYY-MM-DD, время HH:MM"
	msgOutOfHours         = "время вне часов работы мастерской"
	msgSlotTaken          = "выбранный временной слот уже занят"
)

type Handler struct {
	engine BookingEngine
	logger Logger
}

func NewHandler(engine BookingEngine, logger Logger) *Handler {
	return &Handler{
		engine: engine,
		logger: logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.engine.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrMissingFields):
			h.logger.Warn("POST /bookings - Missing fields: phone=%q", req.CustomerPhone)
			handlers.RespondBadRequest(w, msgMissingFields)

		case errors.Is(err, createBooking.ErrInvalidFormat):
			h.logger.Warn("POST /bookings - Invalid format: date=%q, time=%q", req.Date, req.Time)
			handlers.RespondBadRequest(w, msgInvalidFormat)

		case errors.Is(err, createBooking.ErrOutOfHours):
			h.logger.Warn("POST /bookings - Out of hours: shop=%q, time=%q", req.ShopID, req.Time)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgOutOfHours)

		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: shop=%q, date=%q, time=%q", req.ShopID, req.Date, req.Time)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: shop=%q, error=%v", req.ShopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: id=%s, shop=%s", result.AppointmentID, result.ShopID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
