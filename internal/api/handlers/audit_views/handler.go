package audit_views

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/service/reservations"
)

const (
	msgInvalidParams = "нужны ID мастерской и дата в формате YYYY-MM-DD"
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

// Handle GET /api/v1/shops/{shopId}/audit
// Query params: date (required), phone (опционально, можно несколько)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID := mux.Vars(r)["shopId"]
	query := r.URL.Query()
	date := query.Get("date")

	report, err := h.service.AuditViews(r.Context(), shopID, date, query["phone"]...)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /shops/{id}/audit - Invalid parameters: shop=%q, date=%q", shopID, date)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /shops/{id}/audit - Failed to audit views: shop=%q, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/{id}/audit - Audit done: shop=%s, date=%s, checked=%d, consistent=%t",
		shopID, date, report.Checked, report.Consistent())
	handlers.RespondJSON(w, http.StatusOK, report)
}
