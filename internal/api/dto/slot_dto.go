package dto

import (
	"encoding/json"
	"fmt"

	"github.com/spec-kit/slot-booking-service/internal/domain"
)

// SlotList decodes the signup slot payload. Callers send slots as
// [hour, minute] tuples; an entry may itself be a list of tuples, which is
// flattened one level, matching the behavior of the previous API. Every
// decoded slot gets a fresh stable identifier.
type SlotList []domain.Slot

// UnmarshalJSON accepts [[9,0],[10,0]] as well as [[[9,0],[10,0]]].
func (l *SlotList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("availableSlots must be an array: %w", err)
	}

	out := make([]domain.Slot, 0, len(raw))
	for _, entry := range raw {
		var pair []int
		if err := json.Unmarshal(entry, &pair); err == nil {
			slot, err := slotFromPair(pair)
			if err != nil {
				return err
			}
			out = append(out, slot)
			continue
		}

		var nested [][]int
		if err := json.Unmarshal(entry, &nested); err != nil {
			return fmt.Errorf("slot entry must be [hour, minute] or a list of such pairs")
		}
		for _, p := range nested {
			slot, err := slotFromPair(p)
			if err != nil {
				return err
			}
			out = append(out, slot)
		}
	}

	*l = out
	return nil
}

func slotFromPair(pair []int) (domain.Slot, error) {
	if len(pair) != 2 {
		return domain.Slot{}, fmt.Errorf("slot must be an [hour, minute] pair, got %d elements", len(pair))
	}
	hour, minute := pair[0], pair[1]
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return domain.Slot{}, fmt.Errorf("slot [%d, %d] is not a valid time of day", hour, minute)
	}
	return domain.NewSlot(hour, minute), nil
}
