package repository

import (
	"context"
	"errors"

	"github.com/mahostav/api/internal/database"
	"github.com/mahostav/api/internal/model"
)

// RegistrationRepository handles solo registration data access
type RegistrationRepository struct {
	db database.Database
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(db database.Database) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// GetByUserAndEvent returns the user's registration for an event, or nil
func (r *RegistrationRepository) GetByUserAndEvent(ctx context.Context, userID, eventID string) (*model.Registration, error) {
	query := `
		SELECT * FROM registration
		WHERE user_id = type::record($user_id) AND event_id = type::record($event_id)
		LIMIT 1
	`
	vars := map[string]interface{}{"user_id": userID, "event_id": eventID}
	return r.getOne(ctx, query, vars)
}

// GetByID retrieves a registration by ID
func (r *RegistrationRepository) GetByID(ctx context.Context, id string) (*model.Registration, error) {
	if !isRecordOf("registration", id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT * FROM type::record($id)`, map[string]interface{}{"id": id})
}

// Create inserts a registration. A second registration for the same user and
// event fails with database.ErrDuplicate from the registration_user_event index.
func (r *RegistrationRepository) Create(ctx context.Context, reg *model.Registration) error {
	query := `
		CREATE registration CONTENT {
			user_id: type::record($user_id),
			event_id: type::record($event_id),
			participant_name: $participant_name,
			mahostav_id: $mahostav_id,
			phone_number: $phone_number,
			registered_at: time::now()
		}
	`
	vars := map[string]interface{}{
		"user_id":          reg.UserID,
		"event_id":         reg.EventID,
		"participant_name": reg.ParticipantName,
		"mahostav_id":      reg.MahostavID,
		"phone_number":     reg.PhoneNumber,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return err
	}
	row, err := asRow(result)
	if err != nil {
		return err
	}

	reg.ID = getID(row, "id")
	reg.RegisteredAt = getTimeValue(row, "registered_at")
	return nil
}

// Delete removes a registration
func (r *RegistrationRepository) Delete(ctx context.Context, id string) error {
	return r.db.Execute(ctx, `DELETE type::record($id)`, map[string]interface{}{"id": id})
}

// ListByUser returns the user's registrations joined with event metadata, newest first
func (r *RegistrationRepository) ListByUser(ctx context.Context, userID string) ([]*model.RegistrationWithEvent, error) {
	query := `
		SELECT id, event_id, registered_at,
			event_id.{name, type, description, date_time, venue} AS events
		FROM registration
		WHERE user_id = type::record($user_id)
		ORDER BY registered_at DESC
	`

	results, err := r.db.Query(ctx, query, map[string]interface{}{"user_id": userID})
	if err != nil {
		return nil, err
	}

	rows := statementRows(results, 0)
	out := make([]*model.RegistrationWithEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, &model.RegistrationWithEvent{
			ID:           getID(row, "id"),
			EventID:      getID(row, "event_id"),
			RegisteredAt: getTimeValue(row, "registered_at"),
			Event:        parseEventSummary(getMap(row, "events")),
		})
	}
	return out, nil
}

// RegisteredEventIDs returns the IDs of every event the user is registered
// for, either solo or as the owner of a team
func (r *RegistrationRepository) RegisteredEventIDs(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT VALUE event_id FROM registration WHERE user_id = type::record($user_id);
		SELECT VALUE event_id FROM team_registration WHERE user_id = type::record($user_id);
	`

	results, err := r.db.Query(ctx, query, map[string]interface{}{"user_id": userID})
	if err != nil {
		return nil, err
	}

	var ids []string
	for stmt := 0; stmt < 2; stmt++ {
		for _, v := range statementValues(results, stmt) {
			if id := convertSurrealID(v); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

func (r *RegistrationRepository) getOne(ctx context.Context, query string, vars map[string]interface{}) (*model.Registration, error) {
	result, err := r.db.QueryOne(ctx, query, vars)
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
	return parseRegistration(row), nil
}

func parseRegistration(row map[string]interface{}) *model.Registration {
	return &model.Registration{
		ID:              getID(row, "id"),
		UserID:          getID(row, "user_id"),
		EventID:         getID(row, "event_id"),
		ParticipantName: getString(row, "participant_name"),
		MahostavID:      getString(row, "mahostav_id"),
		PhoneNumber:     getString(row, "phone_number"),
		RegisteredAt:    getTimeValue(row, "registered_at"),
	}
}
