package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mahostav/api/internal/database"
	"github.com/mahostav/api/internal/model"
)

// TeamRepository handles team registration data access
type TeamRepository struct {
	db database.Database
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db database.Database) *TeamRepository {
	return &TeamRepository{db: db}
}

// MembersByEvent returns every player on every roster registered for an event
func (r *TeamRepository) MembersByEvent(ctx context.Context, eventID string) ([]*model.TeamMember, error) {
	query := `SELECT * FROM team_member WHERE event_id = type::record($event_id)`

	results, err := r.db.Query(ctx, query, map[string]interface{}{"event_id": eventID})
	if err != nil {
		return nil, err
	}

	rows := statementRows(results, 0)
	members := make([]*model.TeamMember, 0, len(rows))
	for _, row := range rows {
		members = append(members, parseTeamMember(row))
	}
	return members, nil
}

// GenerateTeamID invokes fn::generate_team_id and returns the new identifier
func (r *TeamRepository) GenerateTeamID(ctx context.Context) (string, error) {
	result, err := r.db.QueryOne(ctx, `RETURN fn::generate_team_id()`, nil)
	if err != nil {
		return "", err
	}
	id, ok := result.(string)
	if !ok || id == "" {
		return "", fmt.Errorf("%w: generate_team_id returned %T", errUnexpectedFormat, result)
	}
	return id, nil
}

// CreateWithMembers writes the team row and one row per member in a single
// transaction. Either all rows are written or none are. A player already on
// another roster for the event fails the whole write with database.ErrDuplicate.
func (r *TeamRepository) CreateWithMembers(ctx context.Context, nt *model.NewTeam) (*model.TeamWithMembers, error) {
	team := nt.Team
	teamKey := newRecordKey()

	batch := database.NewAtomicBatch()
	batch.Add(`
		CREATE type::thing("team_registration", $key) CONTENT {
			team_id: $team_id,
			event_id: type::record($event_id),
			team_title: $team_title,
			college_name: $college_name,
			leader_mahostav_id: $leader_mahostav_id,
			leader_name: $leader_name,
			leader_phone: $leader_phone,
			leader_email: $leader_email,
			user_id: type::record($user_id),
			created_on: time::now()
		}
	`, map[string]interface{}{
		"key":                teamKey,
		"team_id":            team.TeamID,
		"event_id":           team.EventID,
		"team_title":         team.TeamTitle,
		"college_name":       team.CollegeName,
		"leader_mahostav_id": team.LeaderMahostavID,
		"leader_name":        team.LeaderName,
		"leader_phone":       team.LeaderPhone,
		"leader_email":       team.LeaderEmail,
		"user_id":            team.UserID,
	})

	for _, m := range nt.Members {
		batch.Add(`
			CREATE team_member CONTENT {
				team_registration_id: type::thing("team_registration", $team_key),
				event_id: type::record($event_id),
				player_name: $player_name,
				player_key: $player_key,
				college_id: IF $college_id IS NOT NULL THEN $college_id ELSE NONE END,
				contact: IF $contact IS NOT NULL THEN $contact ELSE NONE END,
				created_on: time::now()
			}
		`, map[string]interface{}{
			"team_key":    teamKey,
			"event_id":    team.EventID,
			"player_name": m.PlayerName,
			"player_key":  model.FoldName(m.PlayerName),
			"college_id":  ptrToNone(m.CollegeID),
			"contact":     ptrToNone(m.Contact),
		})
	}

	if err := batch.Execute(ctx, r.db); err != nil {
		return nil, err
	}

	created, err := r.GetWithMembers(ctx, "team_registration:"+teamKey)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%w: team %s missing after commit", database.ErrNotFound, team.TeamID)
	}
	return created, nil
}

const teamWithMembersFields = `
	*,
	event_id.{name, type, description, date_time, venue} AS events,
	(SELECT * FROM team_member WHERE team_registration_id = $parent.id ORDER BY created_on ASC) AS members
`

// GetWithMembers retrieves a team registration and its roster
func (r *TeamRepository) GetWithMembers(ctx context.Context, id string) (*model.TeamWithMembers, error) {
	if !isRecordOf("team_registration", id) {
		return nil, nil
	}

	query := `SELECT ` + teamWithMembersFields + ` FROM type::record($id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	row, err := asRow(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseTeamWithMembers(row), nil
}

// ListByUser returns the teams a user registered, newest first
func (r *TeamRepository) ListByUser(ctx context.Context, userID string) ([]*model.TeamWithMembers, error) {
	query := `SELECT ` + teamWithMembersFields + `
		FROM team_registration
		WHERE user_id = type::record($user_id)
		ORDER BY created_on DESC
	`

	results, err := r.db.Query(ctx, query, map[string]interface{}{"user_id": userID})
	if err != nil {
		return nil, err
	}

	rows := statementRows(results, 0)
	teams := make([]*model.TeamWithMembers, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, parseTeamWithMembers(row))
	}
	return teams, nil
}

// DeleteOrphans removes team registrations created before cutoff that have no
// member rows, and returns how many were removed
func (r *TeamRepository) DeleteOrphans(ctx context.Context, cutoff time.Time) (int, error) {
	query := `
		DELETE team_registration
		WHERE created_on < <datetime>$cutoff
			AND count((SELECT id FROM team_member WHERE team_registration_id = $parent.id)) = 0
		RETURN BEFORE
	`

	results, err := r.db.Query(ctx, query, map[string]interface{}{"cutoff": cutoff.UTC().Format(time.RFC3339)})
	if err != nil {
		return 0, err
	}
	return len(statementRows(results, 0)), nil
}

func parseTeamWithMembers(row map[string]interface{}) *model.TeamWithMembers {
	memberRows := getRows(row, "members")
	members := make([]*model.TeamMember, 0, len(memberRows))
	for _, m := range memberRows {
		members = append(members, parseTeamMember(m))
	}
	return &model.TeamWithMembers{
		TeamRegistration: parseTeamRegistration(row),
		Event:            parseEventSummary(getMap(row, "events")),
		Members:          members,
	}
}

func parseTeamRegistration(row map[string]interface{}) *model.TeamRegistration {
	return &model.TeamRegistration{
		ID:               getID(row, "id"),
		TeamID:           getString(row, "team_id"),
		EventID:          getID(row, "event_id"),
		TeamTitle:        getString(row, "team_title"),
		CollegeName:      getString(row, "college_name"),
		LeaderMahostavID: getString(row, "leader_mahostav_id"),
		LeaderName:       getString(row, "leader_name"),
		LeaderPhone:      getString(row, "leader_phone"),
		LeaderEmail:      getString(row, "leader_email"),
		UserID:           getID(row, "user_id"),
		CreatedOn:        getTimeValue(row, "created_on"),
	}
}

func parseTeamMember(row map[string]interface{}) *model.TeamMember {
	return &model.TeamMember{
		ID:                 getID(row, "id"),
		TeamRegistrationID: getID(row, "team_registration_id"),
		EventID:            getID(row, "event_id"),
		PlayerName:         getString(row, "player_name"),
		CollegeID:          getStringPtr(row, "college_id"),
		Contact:            getStringPtr(row, "contact"),
	}
}
