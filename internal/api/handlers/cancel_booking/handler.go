package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/api/handlers"
	cancelBooking "github.com/m04kA/SMC-WorkshopAppointments/internal/usecase/cancel_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingFields      = "нужен ID записи либо телефон и дата"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound           = "запись не найдена"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrMissingFields):
			h.logger.Warn("POST /bookings/cancel - Missing fields")
			handlers.RespondBadRequest(w, msgMissingFields)

		case errors.Is(err, cancelBooking.ErrInvalidFormat):
			h.logger.Warn("POST /bookings/cancel - Invalid date: %q", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, cancelBooking.ErrNotFound):
			h.logger.Warn("POST /bookings/cancel - Not found: id=%q, phone=%q, date=%q",
				req.AppointmentID, req.CustomerPhone, req.Date)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("POST /bookings/cancel - Failed to cancel booking: id=%q, error=%v", req.AppointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/cancel - Cancelled %d booking(s), removed %d record(s)",
		len(result.Reservations), result.RemovedRecords)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
