package dto

import "github.com/spec-kit/slot-booking-service/internal/domain"

// BookSlotRequest payload for booking by dean name and 1-based ordinal.
type BookSlotRequest struct {
	DeanName   string `json:"deanName"`
	SlotNumber int    `json:"slotNumber"`
}

// BookSlotResponse echoes the student's full updated booked list.
type BookSlotResponse struct {
	BookedSlot []domain.Slot `json:"bookedSlot"`
}
