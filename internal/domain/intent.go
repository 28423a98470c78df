package domain

import "strings"

// IntentName is one of the intents recognized by the dialogue front-end
type IntentName string

const (
	IntentMakeBooking       IntentName = "MakeBooking"
	IntentCancelBooking     IntentName = "CancelBooking"
	IntentCheckAvailability IntentName = "CheckAvailability"
	IntentOpeningHours      IntentName = "OpeningHours"
)

// Slot names filled by the dialogue front-end
const (
	SlotShopID        = "ShopId"
	SlotService       = "Service"
	SlotDate          = "Date"
	SlotTime          = "Time"
	SlotName          = "Name"
	SlotPhone         = "Phone"
	SlotPlate         = "Plate"
	SlotAppointmentID = "AppointmentId"
)

// FulfillmentFulfilled is the only fulfillment state ever returned
const FulfillmentFulfilled = "Fulfilled"

// ContentTypePlainText is the content type of every rendered message
const ContentTypePlainText = "PlainText"

// Intent is a structured utterance: an intent name plus interpreted slot values.
// A slot that is missing and a slot that holds only whitespace are both treated as absent.
type Intent struct {
	Name  IntentName
	Slots map[string]string
}

// Slot returns the trimmed slot value and whether it is present
func (i *Intent) Slot(name string) (string, bool) {
	v, ok := i.Slots[name]
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// SlotOr returns the slot value or def when absent
func (i *Intent) SlotOr(name, def string) string {
	if v, ok := i.Slot(name); ok {
		return v
	}
	return def
}

// Message is one rendered response message
type Message struct {
	ContentType string
	Content     string
}

// Response is the outcome of dispatching an intent
type Response struct {
	IntentName       IntentName
	FulfillmentState string
	Messages         []Message
}

// NewResponse builds a fulfilled response with a single plain-text message
func NewResponse(intent IntentName, content string) *Response {
	return &Response{
		IntentName:       intent,
		FulfillmentState: FulfillmentFulfilled,
		Messages:         []Message{{ContentType: ContentTypePlainText, Content: content}},
	}
}
