package intent

import (
	"net/http"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/api/handlers"
)

const (
	msgInvalidEvent = "некорректное событие"
)

type Handler struct {
	dispatcher Dispatcher
	logger     Logger
}

func NewHandler(dispatcher Dispatcher, logger Logger) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle POST /api/v1/intents
// Любое разобранное событие получает 200 и закрытый диалог, даже при ошибке бизнес-логики
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var event Event
	if err := handlers.DecodeJSONLenient(r, &event); err != nil {
		h.logger.Warn("POST /intents - Invalid event: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEvent)
		return
	}

	in := event.ToDomainIntent()
	resp := h.dispatcher.Dispatch(r.Context(), in)

	h.logger.Info("POST /intents - Intent handled: name=%q, slots=%d", in.Name, len(in.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromDomainResponse(&event, resp))
}
