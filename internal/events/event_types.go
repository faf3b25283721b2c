package events

import (
	"time"

	"github.com/spec-kit/slot-booking-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSlotBooked     EventType = "slot_booked"
	EventDeanRegistered EventType = "dean_registered"
)

// Event represents a domain event emitted by services. Events are internal
// plumbing (cache invalidation); nothing notifies users.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SlotBookedPayload payload.
type SlotBookedPayload struct {
	DeanID    string      `json:"dean_id"`
	DeanName  string      `json:"dean_name"`
	StudentID string      `json:"student_id"`
	Slot      domain.Slot `json:"slot"`
}

// DeanRegisteredPayload payload.
type DeanRegisteredPayload struct {
	DeanID    string `json:"dean_id"`
	DeanName  string `json:"dean_name"`
	SlotCount int    `json:"slot_count"`
}
