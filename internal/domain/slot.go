package domain

import "github.com/google/uuid"

// Slot is a bookable unit of time offered by a dean. Every slot carries a
// stable generated identifier so that booking one of two slots with the same
// time removes exactly that slot and not its twin.
type Slot struct {
	ID     string `json:"id"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
}

// NewSlot mints a slot with a fresh identifier.
func NewSlot(hour, minute int) Slot {
	return Slot{ID: uuid.NewString(), Hour: hour, Minute: minute}
}
