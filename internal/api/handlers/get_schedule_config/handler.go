package get_schedule_config

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/service/schedule"
)

const (
	msgConfigInvalid = "часы работы мастерской настроены некорректно"
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

// Handle GET /api/v1/shops/{shopId}/hours
// Возвращает действующие часы: собственные, общие или по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID := mux.Vars(r)["shopId"]

	cfg, err := h.service.Resolve(r.Context(), shopID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrConfigInvalid):
			h.logger.Error("GET /shops/{id}/hours - Invalid stored hours: shop=%q, error=%v", shopID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgConfigInvalid)

		default:
			h.logger.Error("GET /shops/{id}/hours - Failed to resolve hours: shop=%q, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromDomainConfig(shopID, cfg)

	h.logger.Info("GET /shops/{id}/hours - Hours retrieved: shop=%s, source=%s", shopID, response.Source)
	handlers.RespondJSON(w, http.StatusOK, response)
}
