package service

import (
	"context"
	"strings"

	"github.com/mahostav/api/internal/catalog"
	"github.com/mahostav/api/internal/model"
)

// EventRepository defines the interface for event storage
type EventRepository interface {
	GetByID(ctx context.Context, id string) (*model.Event, error)
	ListByType(ctx context.Context, typ model.EventType) ([]*model.Event, error)
}

// RegisteredEventsRepository reports which events a user is registered for
type RegisteredEventsRepository interface {
	RegisteredEventIDs(ctx context.Context, userID string) ([]string, error)
}

// EventService lists events and annotates them for the caller
type EventService struct {
	eventRepo  EventRepository
	registered RegisteredEventsRepository
	defaults   *catalog.Catalog
}

// EventServiceConfig holds configuration for the event service
type EventServiceConfig struct {
	EventRepo      EventRepository
	RegisteredRepo RegisteredEventsRepository
	Catalog        *catalog.Catalog
}

// NewEventService creates a new event service
func NewEventService(cfg EventServiceConfig) *EventService {
	return &EventService{
		eventRepo:  cfg.EventRepo,
		registered: cfg.RegisteredRepo,
		defaults:   cfg.Catalog,
	}
}

// List returns the events of one category. When the store has none, the
// built-in defaults for the category are returned instead, so the list is
// never empty.
func (s *EventService) List(ctx context.Context, userID, category string) ([]*model.EventWithStatus, error) {
	typ := model.EventType(strings.ToLower(strings.TrimSpace(category)))
	if !typ.Valid() {
		return nil, ErrInvalidEventType
	}

	events, err := s.eventRepo.ListByType(ctx, typ)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 && s.defaults != nil {
		events = s.defaults.Events(typ)
	}

	registered, err := s.registeredSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*model.EventWithStatus, 0, len(events))
	for _, e := range events {
		_, ok := registered[e.ID]
		out = append(out, model.NewEventWithStatus(e, ok))
	}
	return out, nil
}

// Get returns one event annotated for the caller. Default events resolve
// from the built-in catalogue.
func (s *EventService) Get(ctx context.Context, userID, eventID string) (*model.EventWithStatus, error) {
	event, err := s.lookup(ctx, eventID, true)
	if err != nil {
		return nil, err
	}

	registered, err := s.registeredSet(ctx, userID)
	if err != nil {
		return nil, err
	}
	_, ok := registered[event.ID]
	return model.NewEventWithStatus(event, ok), nil
}

// Form returns the registration form descriptor for a registrable event
func (s *EventService) Form(ctx context.Context, eventID string) (*model.RegistrationForm, error) {
	event, err := s.lookup(ctx, eventID, false)
	if err != nil {
		return nil, err
	}
	return model.NewRegistrationForm(event), nil
}

// lookup loads an event from the store. Catalogue placeholders are only
// returned when allowPlaceholder is set.
func (s *EventService) lookup(ctx context.Context, eventID string, allowPlaceholder bool) (*model.Event, error) {
	if strings.HasPrefix(eventID, catalog.IDPrefix) {
		if !allowPlaceholder || s.defaults == nil {
			return nil, ErrEventNotFound
		}
		if e, ok := s.defaults.Lookup(eventID); ok {
			return e, nil
		}
		return nil, ErrEventNotFound
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil || event.Placeholder {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *EventService) registeredSet(ctx context.Context, userID string) (map[string]struct{}, error) {
	ids, err := s.registered.RegisteredEventIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
