package dto

// SignupRequest payload for new accounts. AvailableSlots is only honored for
// the dean role; the original wire format (tuple arrays, possibly nested one
// level) is accepted and converted by SlotList.
type SignupRequest struct {
	Role           string   `json:"role"`
	Name           string   `json:"name"`
	UniversityID   string   `json:"universityID"`
	Password       string   `json:"password"`
	AvailableSlots SlotList `json:"availableSlots"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	UniversityID string `json:"universityID"`
	Password     string `json:"password"`
}

// SignupUser echoes the created account in the signup response.
type SignupUser struct {
	Name         string `json:"name"`
	UniversityID string `json:"universityID"`
}
