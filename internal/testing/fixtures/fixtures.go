package fixtures

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mahostav/api/internal/database"
	"github.com/mahostav/api/internal/model"
	"github.com/mahostav/api/internal/repository"
)

// DefaultPassword is the password given to every fixture account
const DefaultPassword = "testpass123"

// Factory creates test entities in the database
type Factory struct {
	db            database.Database
	users         *repository.UserRepository
	profiles      *repository.ProfileRepository
	registrations *repository.RegistrationRepository
	teams         *repository.TeamRepository
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{
		db:            db,
		users:         repository.NewUserRepository(db),
		profiles:      repository.NewProfileRepository(db),
		registrations: repository.NewRegistrationRepository(db),
		teams:         repository.NewTeamRepository(db),
	}
}

func randomID() string {
	return uuid.NewString()[:8]
}

func ctx(t *testing.T) context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return c
}

// ============================================================================
// Account Fixtures
// ============================================================================

// AccountOpts customizes account creation
type AccountOpts struct {
	Email            string
	Name             string
	Password         string
	Phone            string
	Role             model.ParticipantRole
	CollegeName      string
	UniversityRollNo string
	// WithParticipantID issues a MAHOSTAV ID after the account is created
	WithParticipantID bool
}

// Account is a created user with its profile
type Account struct {
	User    *model.User
	Profile *model.Profile
}

// CreateAccount creates a user, profile and role row. The account has no
// participant ID unless WithParticipantID is set.
func (f *Factory) CreateAccount(t *testing.T, opts ...func(*AccountOpts)) *Account {
	t.Helper()

	id := randomID()
	o := &AccountOpts{
		Email:            fmt.Sprintf("user_%s@test.local", id),
		Name:             "Test Participant " + id,
		Password:         DefaultPassword,
		Phone:            "9876543210",
		Role:             model.RoleUniversity,
		UniversityRollNo: "ROLL" + id,
	}
	for _, fn := range opts {
		fn(o)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("fixtures: hashing password: %v", err)
	}
	hashStr := string(hash)

	user := &model.User{Email: o.Email, Hash: &hashStr}
	profile := &model.Profile{
		Name:  o.Name,
		Email: o.Email,
		Phone: optional(o.Phone),
	}
	switch o.Role {
	case model.RoleUniversity:
		profile.UniversityRollNo = optional(o.UniversityRollNo)
	case model.RoleOutside:
		profile.CollegeName = optional(o.CollegeName)
	}

	if err := f.users.CreateAccount(ctx(t), user, profile, o.Role); err != nil {
		t.Fatalf("fixtures: creating account %s: %v", o.Email, err)
	}

	if o.WithParticipantID {
		mid, err := f.profiles.GenerateParticipantID(ctx(t), user.ID)
		if err != nil {
			t.Fatalf("fixtures: generating participant id: %v", err)
		}
		profile.MahostavID = &mid
	}

	return &Account{User: user, Profile: profile}
}

// AsOutsider registers the account as an outside participant
func AsOutsider(college string) func(*AccountOpts) {
	return func(o *AccountOpts) {
		o.Role = model.RoleOutside
		o.CollegeName = college
	}
}

// WithParticipantID issues a MAHOSTAV ID for the account
func WithParticipantID(o *AccountOpts) {
	o.WithParticipantID = true
}

// ============================================================================
// Event Fixtures
// ============================================================================

// EventOpts customizes event creation
type EventOpts struct {
	Key      string
	Name     string
	Type     model.EventType
	TeamSize string
	Venue    string
	Fees     float64
	DateTime time.Time
}

// CreateEvent inserts an event row. Events are managed outside the API, so
// there is no repository write path for them.
func (f *Factory) CreateEvent(t *testing.T, opts ...func(*EventOpts)) *model.Event {
	t.Helper()

	id := randomID()
	o := &EventOpts{
		Key:      "ev_" + id,
		Name:     "Event " + id,
		Type:     model.EventTypeSports,
		TeamSize: "Individual",
		Venue:    "Main Ground",
		Fees:     100,
		DateTime: time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC),
	}
	for _, fn := range opts {
		fn(o)
	}

	query := `
		CREATE type::thing("event", $key) CONTENT {
			name: $name,
			description: $description,
			type: $type,
			date_time: <datetime>$date_time,
			venue: $venue,
			fees: $fees,
			team_size: $team_size
		}
	`
	vars := map[string]interface{}{
		"key":         o.Key,
		"name":        o.Name,
		"description": o.Name + " for tests",
		"type":        string(o.Type),
		"date_time":   o.DateTime.Format(time.RFC3339),
		"venue":       o.Venue,
		"fees":        o.Fees,
		"team_size":   o.TeamSize,
	}
	if err := f.db.Execute(ctx(t), query, vars); err != nil {
		t.Fatalf("fixtures: creating event %s: %v", o.Key, err)
	}

	dt := o.DateTime
	return &model.Event{
		ID:          "event:" + o.Key,
		Name:        o.Name,
		Description: o.Name + " for tests",
		Type:        o.Type,
		DateTime:    &dt,
		Venue:       &o.Venue,
		Fees:        &o.Fees,
		TeamSize:    &o.TeamSize,
	}
}

// TeamEvent makes the event take team registrations
func TeamEvent(size string) func(*EventOpts) {
	return func(o *EventOpts) {
		o.TeamSize = size
	}
}

// Cultural puts the event in the cultural category
func Cultural(o *EventOpts) {
	o.Type = model.EventTypeCultural
}

// ============================================================================
// Registration Fixtures
// ============================================================================

// CreateRegistration registers the account for a solo event
func (f *Factory) CreateRegistration(t *testing.T, acct *Account, event *model.Event) *model.Registration {
	t.Helper()

	reg := &model.Registration{
		UserID:          acct.User.ID,
		EventID:         event.ID,
		ParticipantName: acct.Profile.Name,
		MahostavID:      deref(acct.Profile.MahostavID),
		PhoneNumber:     "9876543210",
	}
	if err := f.registrations.Create(ctx(t), reg); err != nil {
		t.Fatalf("fixtures: creating registration: %v", err)
	}
	return reg
}

// CreateTeam registers a team led by the account with the given players
func (f *Factory) CreateTeam(t *testing.T, acct *Account, event *model.Event, players ...string) *model.TeamWithMembers {
	t.Helper()

	teamID, err := f.teams.GenerateTeamID(ctx(t))
	if err != nil {
		t.Fatalf("fixtures: generating team id: %v", err)
	}

	nt := &model.NewTeam{
		Team: &model.TeamRegistration{
			TeamID:           teamID,
			EventID:          event.ID,
			TeamTitle:        "Team " + randomID(),
			CollegeName:      "Test College",
			LeaderMahostavID: deref(acct.Profile.MahostavID),
			LeaderName:       acct.Profile.Name,
			LeaderPhone:      "9876543210",
			LeaderEmail:      acct.User.Email,
			UserID:           acct.User.ID,
		},
	}
	for _, name := range players {
		nt.Members = append(nt.Members, &model.TeamMember{PlayerName: name})
	}

	team, err := f.teams.CreateWithMembers(ctx(t), nt)
	if err != nil {
		t.Fatalf("fixtures: creating team: %v", err)
	}
	return team
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
