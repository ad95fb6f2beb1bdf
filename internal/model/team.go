package model

import "time"

// TeamRegistration is a team's entry for a team event
type TeamRegistration struct {
	ID               string    `json:"id"`
	TeamID           string    `json:"team_id"`
	EventID          string    `json:"event_id"`
	TeamTitle        string    `json:"team_title"`
	CollegeName      string    `json:"college_name"`
	LeaderMahostavID string    `json:"leader_mahostav_id"`
	LeaderName       string    `json:"leader_name"`
	LeaderPhone      string    `json:"leader_phone"`
	LeaderEmail      string    `json:"leader_email"`
	UserID           string    `json:"user_id"`
	CreatedOn        time.Time `json:"created_on"`
}

// TeamMember is one player on a team roster
type TeamMember struct {
	ID                 string  `json:"id"`
	TeamRegistrationID string  `json:"team_registration_id"`
	EventID            string  `json:"event_id"`
	PlayerName         string  `json:"player_name"`
	CollegeID          *string `json:"college_id,omitempty"`
	Contact            *string `json:"contact,omitempty"`
}

// TeamWithMembers is a team registration with its roster
type TeamWithMembers struct {
	*TeamRegistration
	Event   *EventSummary `json:"events,omitempty"`
	Members []*TeamMember `json:"members"`
}

// TeamPlayer is a player row on the team registration form
type TeamPlayer struct {
	Name      string `json:"name" validate:"required,max=100"`
	CollegeID string `json:"college_id,omitempty" validate:"max=50"`
	Contact   string `json:"contact,omitempty" validate:"max=50"`
}

// TeamRegistrationRequest is the team registration form
type TeamRegistrationRequest struct {
	TeamTitle        string       `json:"team_title" validate:"required,max=100"`
	CollegeName      string       `json:"college_name" validate:"required,max=200"`
	LeaderMahostavID string       `json:"leader_mahostav_id" validate:"required,max=50"`
	LeaderName       string       `json:"leader_name" validate:"required,max=100"`
	LeaderPhone      string       `json:"leader_phone" validate:"required,phone10"`
	LeaderEmail      string       `json:"leader_email" validate:"required,email"`
	Players          []TeamPlayer `json:"players"`
}

// Validate checks the leader fields and the roster against the event's
// minimum roster size
func (r *TeamRegistrationRequest) Validate(minPlayers int) []FieldError {
	errs := ValidateStruct(r)
	return append(errs, RosterOf(minPlayers, r.Players).Validate()...)
}

// NewTeam is everything the store needs to write one team atomically
type NewTeam struct {
	Team    *TeamRegistration
	Members []*TeamMember
}
