package intent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/domain"
	"github.com/m04kA/SMC-WorkshopAppointments/pkg/logger"
)

type dispatcherFunc func(ctx context.Context, in domain.Intent) *domain.Response

func (f dispatcherFunc) Dispatch(ctx context.Context, in domain.Intent) *domain.Response {
	return f(ctx, in)
}

const bookingEvent = `{
  "sessionId": "abc",
  "inputTranscript": "quiero una cita",
  "sessionState": {
    "sessionAttributes": {"channel": "web"},
    "intent": {
      "name": "MakeBooking",
      "state": "InProgress",
      "confirmationState": "None",
      "slots": {
        "Date":  {"value": {"originalValue": "mañana", "interpretedValue": "2024-05-01"}},
        "Time":  {"value": {"interpretedValue": "10:00"}},
        "Phone": {"value": {"interpretedValue": "555"}},
        "Name":  null
      }
    }
  }
}`

func TestHandle_ClosesDialog(t *testing.T) {
	var got domain.Intent
	h := NewHandler(dispatcherFunc(func(_ context.Context, in domain.Intent) *domain.Response {
		got = in
		return domain.NewResponse(in.Name, "Ese horario ya está tomado. ¿Quieres otro?")
	}), logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/intents", strings.NewReader(bookingEvent)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.IntentMakeBooking, got.Name)
	assert.Equal(t, map[string]string{"Date": "2024-05-01", "Time": "10:00", "Phone": "555"}, got.Slots)

	var resp Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.SessionState.DialogAction)
	assert.Equal(t, "Close", resp.SessionState.DialogAction.Type)
	assert.Equal(t, "MakeBooking", resp.SessionState.Intent.Name)
	assert.Equal(t, "Fulfilled", resp.SessionState.Intent.State)
	assert.Equal(t, "web", resp.SessionState.SessionAttributes["channel"])
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, Message{ContentType: "PlainText", Content: "Ese horario ya está tomado. ¿Quieres otro?"}, resp.Messages[0])
}

func TestHandle_InvalidEvent(t *testing.T) {
	h := NewHandler(dispatcherFunc(func(context.Context, domain.Intent) *domain.Response {
		t.Fatal("dispatcher must not be called")
		return nil
	}), logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/intents", strings.NewReader(`{"sessionState":`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
