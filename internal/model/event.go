package model

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// EventType is the festival category an event belongs to
type EventType string

const (
	EventTypeSports   EventType = "sports"
	EventTypeCultural EventType = "cultural"
)

// Valid reports whether t is a known category
func (t EventType) Valid() bool {
	return t == EventTypeSports || t == EventTypeCultural
}

// RegistrationMode selects the form used to register for an event
type RegistrationMode string

const (
	ModeSolo RegistrationMode = "solo"
	ModeTeam RegistrationMode = "team"
)

var firstNumber = regexp.MustCompile(`\d+`)

// Event represents a festival event
type Event struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Type        EventType  `json:"type"`
	DateTime    *time.Time `json:"date_time,omitempty"`
	Venue       *string    `json:"venue,omitempty"`
	Fees        *float64   `json:"fees,omitempty"`
	TeamSize    *string    `json:"team_size,omitempty"`
	// Placeholder marks events from the built-in catalogue that are not in the store
	Placeholder bool      `json:"placeholder,omitempty"`
	CreatedOn   time.Time `json:"created_on,omitempty"`
}

func (e *Event) teamSize() string {
	if e.TeamSize == nil {
		return ""
	}
	return *e.TeamSize
}

// IsTeamEvent reports whether the event takes team registrations.
// Any team size descriptor other than one mentioning "individual" means team.
func (e *Event) IsTeamEvent() bool {
	size := e.teamSize()
	return size != "" && !strings.Contains(strings.ToLower(size), "individual")
}

// Mode returns the registration form to use for the event
func (e *Event) Mode() RegistrationMode {
	if e.IsTeamEvent() {
		return ModeTeam
	}
	return ModeSolo
}

// MinPlayers returns the first integer in the team size descriptor, or 1.
func (e *Event) MinPlayers() int {
	return MinPlayersFor(e.teamSize())
}

// MinPlayersFor parses a team size descriptor such as "Team of 4" or "4-6 players".
func MinPlayersFor(teamSize string) int {
	match := firstNumber.FindString(teamSize)
	if match == "" {
		return 1
	}
	n, err := strconv.Atoi(match)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// EventWithStatus is an event annotated for the requesting user
type EventWithStatus struct {
	*Event
	Mode         RegistrationMode `json:"mode"`
	MinPlayers   int              `json:"min_players"`
	IsRegistered bool             `json:"is_registered"`
}

// NewEventWithStatus annotates an event with its registration mode and the caller's state
func NewEventWithStatus(e *Event, registered bool) *EventWithStatus {
	return &EventWithStatus{
		Event:        e,
		Mode:         e.Mode(),
		MinPlayers:   e.MinPlayers(),
		IsRegistered: registered,
	}
}

// RegistrationForm describes the form a client renders for an event
type RegistrationForm struct {
	EventID    string           `json:"event_id"`
	EventName  string           `json:"event_name"`
	Mode       RegistrationMode `json:"mode"`
	MinPlayers int              `json:"min_players"`
	Players    []TeamPlayer     `json:"players,omitempty"`
}

// NewRegistrationForm builds the form descriptor, with min blank player rows for team events
func NewRegistrationForm(e *Event) *RegistrationForm {
	form := &RegistrationForm{
		EventID:    e.ID,
		EventName:  e.Name,
		Mode:       e.Mode(),
		MinPlayers: e.MinPlayers(),
	}
	if form.Mode == ModeTeam {
		form.Players = NewRoster(form.MinPlayers).Players()
	}
	return form
}
