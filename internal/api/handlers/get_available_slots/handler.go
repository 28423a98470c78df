package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-WorkshopAppointments/internal/usecase/get_available_slots"
)

const (
	msgMissingDate   = "дата обязательна"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgConfigInvalid = "часы работы мастерской настроены некорректно"
)

type Handler struct {
	engine AvailabilityEngine
	logger Logger
}

func NewHandler(engine AvailabilityEngine, logger Logger) *Handler {
	return &Handler{
		engine: engine,
		logger: logger,
	}
}

// Handle GET /api/v1/shops/{shopId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID := mux.Vars(r)["shopId"]
	date := r.URL.Query().Get("date")

	result, err := h.engine.Execute(r.Context(), ToUseCaseRequest(shopID, date))
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrMissingFields):
			h.logger.Warn("GET /shops/{id}/available-slots - Missing date: shop=%q", shopID)
			handlers.RespondBadRequest(w, msgMissingDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidFormat):
			h.logger.Warn("GET /shops/{id}/available-slots - Invalid date: shop=%q, date=%q", shopID, date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrConfigInvalid):
			h.logger.Error("GET /shops/{id}/available-slots - Invalid schedule: shop=%q, error=%v", shopID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgConfigInvalid)

		default:
			h.logger.Error("GET /shops/{id}/available-slots - Failed to get slots: shop=%q, date=%q, error=%v",
				shopID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/{id}/available-slots - Slots retrieved successfully: shop=%s, date=%s, free=%d, taken=%d",
		result.ShopID, result.Date, len(result.Free), len(result.Taken))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
