package model

import "time"

// Registration is a solo registration of one user for one event
type Registration struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	EventID         string    `json:"event_id"`
	ParticipantName string    `json:"participant_name"`
	MahostavID      string    `json:"mahostav_id"`
	PhoneNumber     string    `json:"phone_number"`
	RegisteredAt    time.Time `json:"registered_at"`
}

// SoloRegistrationRequest is the solo registration form
type SoloRegistrationRequest struct {
	ParticipantName string `json:"participant_name" validate:"required,max=100"`
	MahostavID      string `json:"mahostav_id" validate:"required,max=50"`
	PhoneNumber     string `json:"phone_number" validate:"required,phone10"`
}

// Validate checks the solo registration form
func (r *SoloRegistrationRequest) Validate() []FieldError {
	return ValidateStruct(r)
}

// EventSummary is the slice of event metadata shown next to a registration
type EventSummary struct {
	Name        string     `json:"name"`
	Type        EventType  `json:"type"`
	Description string     `json:"description"`
	DateTime    *time.Time `json:"date_time,omitempty"`
	Venue       *string    `json:"venue,omitempty"`
}

// RegistrationWithEvent is a registration joined with its event
type RegistrationWithEvent struct {
	ID           string        `json:"id"`
	EventID      string        `json:"event_id"`
	RegisteredAt time.Time     `json:"registered_at"`
	Event        *EventSummary `json:"events,omitempty"`
}

// MyRegistrations is everything the caller has signed up for
type MyRegistrations struct {
	Registrations []*RegistrationWithEvent `json:"registrations"`
	Teams         []*TeamWithMembers       `json:"teams"`
}
