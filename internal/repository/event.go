package repository

import (
	"context"
	"errors"

	"github.com/mahostav/api/internal/database"
	"github.com/mahostav/api/internal/model"
)

// EventRepository handles festival event data access
type EventRepository struct {
	db database.Database
}

// NewEventRepository creates a new event repository
func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{db: db}
}

// GetByID retrieves an event; nil if it does not exist
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	if !isRecordOf("event", id) {
		return nil, nil
	}

	result, err := r.db.QueryOne(ctx, `SELECT * FROM type::record($id)`, map[string]interface{}{"id": id})
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
	return parseEvent(row), nil
}

// ListByType returns the events of one category, earliest first
func (r *EventRepository) ListByType(ctx context.Context, typ model.EventType) ([]*model.Event, error) {
	query := `SELECT * FROM event WHERE type = $type ORDER BY date_time ASC, name ASC`

	results, err := r.db.Query(ctx, query, map[string]interface{}{"type": string(typ)})
	if err != nil {
		return nil, err
	}

	rows := statementRows(results, 0)
	events := make([]*model.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, parseEvent(row))
	}
	return events, nil
}

func parseEvent(row map[string]interface{}) *model.Event {
	return &model.Event{
		ID:          getID(row, "id"),
		Name:        getString(row, "name"),
		Description: getString(row, "description"),
		Type:        model.EventType(getString(row, "type")),
		DateTime:    getTime(row, "date_time"),
		Venue:       getStringPtr(row, "venue"),
		Fees:        getFloatPtr(row, "fees"),
		TeamSize:    getStringPtr(row, "team_size"),
		CreatedOn:   getTimeValue(row, "created_on"),
	}
}

func parseEventSummary(row map[string]interface{}) *model.EventSummary {
	if row == nil {
		return nil
	}
	return &model.EventSummary{
		Name:        getString(row, "name"),
		Type:        model.EventType(getString(row, "type")),
		Description: getString(row, "description"),
		DateTime:    getTime(row, "date_time"),
		Venue:       getStringPtr(row, "venue"),
	}
}
