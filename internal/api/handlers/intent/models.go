package intent

import "github.com/m04kA/SMC-WorkshopAppointments/internal/domain"

const dialogActionClose = "Close"

// Event входящее событие диалогового фронтенда (формат Lex V2)
type Event struct {
	SessionState    SessionState `json:"sessionState"`
	InputTranscript string       `json:"inputTranscript,omitempty"`
}

// SessionState состояние сессии
type SessionState struct {
	DialogAction      *DialogAction     `json:"dialogAction,omitempty"`
	Intent            Intent            `json:"intent"`
	SessionAttributes map[string]string `json:"sessionAttributes,omitempty"`
}

// DialogAction следующее действие диалога
type DialogAction struct {
	Type string `json:"type"`
}

// Intent интент со слотами
type Intent struct {
	Name  string           `json:"name"`
	Slots map[string]*Slot `json:"slots,omitempty"`
	State string           `json:"state,omitempty"`
}

// Slot значение слота. Незаполненный слот приходит как null
type Slot struct {
	Value *SlotValue `json:"value"`
}

// SlotValue распознанное значение
type SlotValue struct {
	OriginalValue    string `json:"originalValue,omitempty"`
	InterpretedValue string `json:"interpretedValue"`
}

// Message сообщение ответа
type Message struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// Response ответ фронтенду
type Response struct {
	SessionState SessionState `json:"sessionState"`
	Messages     []Message    `json:"messages"`
}

// ToDomainIntent извлекает имя интента и распознанные значения слотов
func (e *Event) ToDomainIntent() domain.Intent {
	slots := make(map[string]string, len(e.SessionState.Intent.Slots))
	for name, slot := range e.SessionState.Intent.Slots {
		if slot == nil || slot.Value == nil {
			continue
		}
		slots[name] = slot.Value.InterpretedValue
	}

	return domain.Intent{
		Name:  domain.IntentName(e.SessionState.Intent.Name),
		Slots: slots,
	}
}

// FromDomainResponse собирает ответ, закрывающий диалог.
// Слоты и атрибуты сессии возвращаются фронтенду как пришли
func FromDomainResponse(event *Event, resp *domain.Response) *Response {
	messages := make([]Message, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		messages = append(messages, Message{ContentType: m.ContentType, Content: m.Content})
	}

	return &Response{
		SessionState: SessionState{
			DialogAction: &DialogAction{Type: dialogActionClose},
			Intent: Intent{
				Name:  string(resp.IntentName),
				Slots: event.SessionState.Intent.Slots,
				State: resp.FulfillmentState,
			},
			SessionAttributes: event.SessionState.SessionAttributes,
		},
		Messages: messages,
	}
}
