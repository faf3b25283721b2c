package domain

import "time"

// Role differentiates the two account variants.
type Role string

const (
	RoleStudent Role = "student"
	RoleDean    Role = "dean"
)

// Student books slots offered by deans. BookedSlots is append-only and owned
// exclusively by the student.
type Student struct {
	ID           string
	Name         string
	UniversityID string
	PasswordHash string
	BookedSlots  []Slot
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Dean owns and offers bookable slots. Version guards the available pool
// against concurrent booking: every slot mutation must carry the version it
// read, and the store rejects writes against a stale one.
type Dean struct {
	ID             string
	Name           string
	UniversityID   string
	PasswordHash   string
	AvailableSlots []Slot
	PendingSlots   []Slot
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
