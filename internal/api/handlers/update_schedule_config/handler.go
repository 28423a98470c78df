package update_schedule_config

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidData        = "некорректные часы работы"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/shops/{shopId}/hours
// Query params: global=true - сохранить как общие часы всех мастерских
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID := mux.Vars(r)["shopId"]
	if r.URL.Query().Get("global") == "true" {
		shopID = ""
	}

	var req UpdateHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /shops/{id}/hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	cfg, err := req.ToDomainConfig(shopID)
	if err != nil {
		h.logger.Warn("PUT /shops/{id}/hours - Invalid time: shop=%q, error=%v", shopID, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	if err := h.service.SetHours(r.Context(), cfg); err != nil {
		switch {
		case errors.Is(err, schedule.ErrConfigInvalid):
			h.logger.Warn("PUT /shops/{id}/hours - Invalid data: shop=%q, error=%v", shopID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /shops/{id}/hours - Failed to update hours: shop=%q, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /shops/{id}/hours - Hours updated successfully: shop=%q", shopID)
	handlers.RespondJSON(w, http.StatusOK, FromDomainConfig(cfg))
}
