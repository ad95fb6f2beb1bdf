package model

import "time"

// ParticipantRole distinguishes students of the host university from outside participants
type ParticipantRole string

const (
	RoleUniversity ParticipantRole = "university"
	RoleOutside    ParticipantRole = "outside"
)

// Profile holds a user's participant details. One per user.
type Profile struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            *string   `json:"phone,omitempty"`
	CollegeName      *string   `json:"college_name,omitempty"`
	UniversityRollNo *string   `json:"university_roll_no,omitempty"`
	MahostavID       *string   `json:"mahostav_id,omitempty"`
	CreatedOn        time.Time `json:"created_on"`
	UpdatedOn        time.Time `json:"updated_on"`
}

// HasParticipantID reports whether the profile may register for events
func (p *Profile) HasParticipantID() bool {
	return p != nil && p.MahostavID != nil && *p.MahostavID != ""
}

// UserRole is the role row stored alongside the profile
type UserRole struct {
	ID     string          `json:"id"`
	UserID string          `json:"user_id"`
	Role   ParticipantRole `json:"role"`
}

// ProfileView is the profile returned to its owner
type ProfileView struct {
	*Profile
	Role ParticipantRole `json:"role,omitempty"`
}

// ParticipantID is returned when a participant ID is issued
type ParticipantID struct {
	MahostavID string `json:"mahostav_id"`
}
