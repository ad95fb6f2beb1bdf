package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahostav/api/internal/catalog"
	"github.com/mahostav/api/internal/model"
)

func newTestEventService(t *testing.T, events *mockEventRepo, registered []string) *EventService {
	t.Helper()
	defaults, err := catalog.Default()
	require.NoError(t, err)
	return NewEventService(EventServiceConfig{
		EventRepo:      events,
		RegisteredRepo: &mockRegisteredRepo{ids: registered},
		Catalog:        defaults,
	})
}

func TestEventList_AnnotatesRegistration(t *testing.T) {
	t.Parallel()

	events := &mockEventRepo{
		listByTypeFunc: func(ctx context.Context, typ model.EventType) ([]*model.Event, error) {
			assert.Equal(t, model.EventTypeSports, typ)
			return []*model.Event{
				{ID: "event:chess", Name: "Chess", Type: typ, TeamSize: strPtr("Individual")},
				{ID: "event:hoops", Name: "Basketball", Type: typ, TeamSize: strPtr("Team of 5")},
			}, nil
		},
	}
	svc := newTestEventService(t, events, []string{"event:hoops"})

	list, err := svc.List(context.Background(), "user:1", " Sports ")
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.False(t, list[0].IsRegistered)
	assert.Equal(t, model.ModeSolo, list[0].Mode)
	assert.True(t, list[1].IsRegistered)
	assert.Equal(t, model.ModeTeam, list[1].Mode)
	assert.Equal(t, 5, list[1].MinPlayers)
}

func TestEventList_FallsBackToDefaults(t *testing.T) {
	t.Parallel()

	for typ, want := range map[string]int{"sports": 9, "cultural": 8} {
		list, err := newTestEventService(t, &mockEventRepo{}, nil).List(context.Background(), "user:1", typ)
		require.NoError(t, err)
		require.Len(t, list, want, typ)
		for _, e := range list {
			assert.True(t, e.Placeholder)
			assert.False(t, e.IsRegistered)
		}
	}
}

func TestEventList_InvalidType(t *testing.T) {
	t.Parallel()

	_, err := newTestEventService(t, &mockEventRepo{}, nil).List(context.Background(), "user:1", "workshops")
	assert.ErrorIs(t, err, ErrInvalidEventType)
}

func TestEventList_StoreError(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("store down")
	events := &mockEventRepo{
		listByTypeFunc: func(ctx context.Context, typ model.EventType) ([]*model.Event, error) {
			return nil, storeErr
		},
	}

	_, err := newTestEventService(t, events, nil).List(context.Background(), "user:1", "sports")
	assert.ErrorIs(t, err, storeErr)
}

func TestEventGet(t *testing.T) {
	t.Parallel()

	events := &mockEventRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Event, error) {
			if id == "event:chess" {
				return &model.Event{ID: id, Name: "Chess", TeamSize: strPtr("Individual")}, nil
			}
			return nil, nil
		},
	}
	svc := newTestEventService(t, events, []string{"event:chess"})
	ctx := context.Background()

	e, err := svc.Get(ctx, "user:1", "event:chess")
	require.NoError(t, err)
	assert.True(t, e.IsRegistered)

	placeholder, err := svc.Get(ctx, "user:1", "default-swimming")
	require.NoError(t, err)
	assert.True(t, placeholder.Placeholder)

	_, err = svc.Get(ctx, "user:1", "event:missing")
	assert.ErrorIs(t, err, ErrEventNotFound)
	_, err = svc.Get(ctx, "user:1", "default-quidditch")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventForm(t *testing.T) {
	t.Parallel()

	events := &mockEventRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Event, error) {
			return &model.Event{ID: id, Name: "Relay", TeamSize: strPtr("Team of 4")}, nil
		},
	}
	svc := newTestEventService(t, events, nil)

	form, err := svc.Form(context.Background(), "event:relay")
	require.NoError(t, err)
	assert.Equal(t, model.ModeTeam, form.Mode)
	assert.Equal(t, 4, form.MinPlayers)
	assert.Len(t, form.Players, 4)

	_, err = svc.Form(context.Background(), "default-football")
	assert.ErrorIs(t, err, ErrEventNotFound)
}
