package events

import (
	"context"
	"time"
)

// EventType тип доменного события
type EventType string

const (
	// EventAppointmentBooked запись создана, оба представления записаны
	EventAppointmentBooked EventType = "appointment.booked"
	// EventAppointmentCancelled запись отменена
	EventAppointmentCancelled EventType = "appointment.cancelled"
	// EventViewsDiverged одно из представлений записи не удалось записать или удалить
	EventViewsDiverged EventType = "appointment.views_diverged"
)

// Event доменное событие о записи на обслуживание
type Event struct {
	Type          EventType `json:"type"`
	AppointmentID string    `json:"appointmentId"`
	ShopID        string    `json:"shopId"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	CustomerPhone string    `json:"phone,omitempty"`
	Detail        string    `json:"detail,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// Publisher публикует доменные события
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Noop публикатор, отбрасывающий события (events.enabled = false)
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (Noop) Publish(context.Context, Event) error { return nil }

func (Noop) Close() error { return nil }
