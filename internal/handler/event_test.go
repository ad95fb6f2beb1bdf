package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mahostav/api/internal/model"
	"github.com/mahostav/api/internal/service"
)

func teamEvent(id string, registered bool) *model.EventWithStatus {
	return model.NewEventWithStatus(&model.Event{
		ID:       id,
		Name:     "Basketball",
		Type:     model.EventTypeSports,
		TeamSize: stringPtr("Team of 5"),
	}, registered)
}

func TestEventList_RequiresType(t *testing.T) {
	t.Parallel()

	h := NewEventHandler(&mockEventService{})
	rec := httptest.NewRecorder()
	h.List(rec, withUserContext(httptest.NewRequest(http.MethodGet, "/v1/events", nil), "user:123"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestEventList_UnknownType_ReturnsBadRequest(t *testing.T) {
	t.Parallel()

	h := NewEventHandler(&mockEventService{
		listFunc: func(ctx context.Context, userID, category string) ([]*model.EventWithStatus, error) {
			return nil, service.ErrInvalidEventType
		},
	})
	rec := httptest.NewRecorder()
	h.List(rec, withUserContext(httptest.NewRequest(http.MethodGet, "/v1/events?type=esports", nil), "user:123"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestEventList_ReturnsCollection(t *testing.T) {
	t.Parallel()

	var gotUser, gotCategory string
	h := NewEventHandler(&mockEventService{
		listFunc: func(ctx context.Context, userID, category string) ([]*model.EventWithStatus, error) {
			gotUser, gotCategory = userID, category
			return []*model.EventWithStatus{teamEvent("event:bb", true), teamEvent("event:fb", false)}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.List(rec, withUserContext(httptest.NewRequest(http.MethodGet, "/v1/events?type=sports", nil), "user:123"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if gotUser != "user:123" || gotCategory != "sports" {
		t.Errorf("unexpected arguments %q %q", gotUser, gotCategory)
	}

	var resp struct {
		Data  []*model.EventWithStatus `json:"data"`
		Count int                      `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Count != 2 || len(resp.Data) != 2 {
		t.Fatalf("expected 2 events, got %d/%d", resp.Count, len(resp.Data))
	}
	if !resp.Data[0].IsRegistered || resp.Data[1].IsRegistered {
		t.Error("registration state not preserved")
	}
	if resp.Data[0].Mode != model.ModeTeam || resp.Data[0].MinPlayers != 5 {
		t.Errorf("expected team mode with 5 players, got %s/%d", resp.Data[0].Mode, resp.Data[0].MinPlayers)
	}
}

func TestEventGet_Links(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		event        *model.EventWithStatus
		wantRegister string
		wantForm     bool
	}{
		{
			name:         "team event open",
			event:        teamEvent("event:bb", false),
			wantRegister: "/v1/events/event:bb/teams",
			wantForm:     true,
		},
		{
			name:     "already registered",
			event:    teamEvent("event:bb", true),
			wantForm: true,
		},
		{
			name: "solo event",
			event: model.NewEventWithStatus(&model.Event{
				ID: "event:chess", Name: "Chess", TeamSize: stringPtr("Individual"),
			}, false),
			wantRegister: "/v1/events/event:chess/registrations",
			wantForm:     true,
		},
		{
			name: "placeholder",
			event: model.NewEventWithStatus(&model.Event{
				ID: "default-chess", Name: "Chess", Placeholder: true,
			}, false),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotID string
			h := NewEventHandler(&mockEventService{
				getFunc: func(ctx context.Context, userID, eventID string) (*model.EventWithStatus, error) {
					gotID = eventID
					return tt.event, nil
				},
			})

			mux := http.NewServeMux()
			mux.HandleFunc("GET /v1/events/{eventId}", h.Get)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, withUserContext(httptest.NewRequest(http.MethodGet, "/v1/events/"+tt.event.ID, nil), "user:123"))

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
			}
			if gotID != tt.event.ID {
				t.Errorf("expected event ID %q, got %q", tt.event.ID, gotID)
			}
			env := parseData[model.EventWithStatus](t, rec.Body.Bytes())
			if env.Links["register"] != tt.wantRegister {
				t.Errorf("expected register link %q, got %q", tt.wantRegister, env.Links["register"])
			}
			if _, ok := env.Links["form"]; ok != tt.wantForm {
				t.Errorf("form link present=%v, want %v", ok, tt.wantForm)
			}
		})
	}
}

func TestEventForm_Team(t *testing.T) {
	t.Parallel()

	h := NewEventHandler(&mockEventService{
		formFunc: func(ctx context.Context, eventID string) (*model.RegistrationForm, error) {
			return model.NewRegistrationForm(teamEvent(eventID, false).Event), nil
		},
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/events/{eventId}/form", h.Form)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, withUserContext(httptest.NewRequest(http.MethodGet, "/v1/events/event:bb/form", nil), "user:123"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	env := parseData[model.RegistrationForm](t, rec.Body.Bytes())
	if env.Data.Mode != model.ModeTeam || len(env.Data.Players) != 5 {
		t.Errorf("expected team form with 5 rows, got %s with %d", env.Data.Mode, len(env.Data.Players))
	}
	if env.Links["submit"] != "/v1/events/event:bb/teams" {
		t.Errorf("unexpected submit link %q", env.Links["submit"])
	}
}

func TestEventForm_Placeholder_ReturnsNotFound(t *testing.T) {
	t.Parallel()

	h := NewEventHandler(&mockEventService{
		formFunc: func(ctx context.Context, eventID string) (*model.RegistrationForm, error) {
			return nil, service.ErrEventNotFound
		},
	})

	rec := httptest.NewRecorder()
	h.Form(rec, withUserContext(httptest.NewRequest(http.MethodGet, "/v1/events/default-chess/form", nil), "user:123"))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}
