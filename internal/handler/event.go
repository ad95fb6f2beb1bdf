package handler

import (
	"context"
	"net/http"

	"github.com/mahostav/api/internal/middleware"
	"github.com/mahostav/api/internal/model"
)

// EventService is the part of service.EventService used by EventHandler
type EventService interface {
	List(ctx context.Context, userID, category string) ([]*model.EventWithStatus, error)
	Get(ctx context.Context, userID, eventID string) (*model.EventWithStatus, error)
	Form(ctx context.Context, eventID string) (*model.RegistrationForm, error)
}

// EventHandler handles event catalogue endpoints
type EventHandler struct {
	eventService EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// List handles GET /v1/events?type=sports|cultural
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("type")
	if category == "" {
		WriteError(w, model.NewBadRequestError("query parameter type is required (sports or cultural)"))
		return
	}

	events, err := h.eventService.List(r.Context(), middleware.GetUserID(r.Context()), category)
	if err != nil {
		writeServiceError(w, r, "list events", err)
		return
	}

	WriteCollection(w, http.StatusOK, events, len(events), map[string]string{
		"self":          "/v1/events?type=" + category,
		"registrations": "/v1/registrations",
	})
}

// Get handles GET /v1/events/{eventId}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")

	event, err := h.eventService.Get(r.Context(), middleware.GetUserID(r.Context()), eventID)
	if err != nil {
		writeServiceError(w, r, "get event", err)
		return
	}

	WriteData(w, http.StatusOK, event, eventLinks(event))
}

// Form handles GET /v1/events/{eventId}/form
func (h *EventHandler) Form(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")

	form, err := h.eventService.Form(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, r, "get registration form", err)
		return
	}

	WriteData(w, http.StatusOK, form, map[string]string{
		"event":  "/v1/events/" + form.EventID,
		"submit": submitPath(form.EventID, form.Mode),
	})
}

func eventLinks(e *model.EventWithStatus) map[string]string {
	links := map[string]string{
		"self": "/v1/events/" + e.ID,
	}
	// Placeholders cannot be registered for
	if e.Placeholder {
		return links
	}
	links["form"] = "/v1/events/" + e.ID + "/form"
	if !e.IsRegistered {
		links["register"] = submitPath(e.ID, e.Mode)
	}
	return links
}

func submitPath(eventID string, mode model.RegistrationMode) string {
	if mode == model.ModeTeam {
		return "/v1/events/" + eventID + "/teams"
	}
	return "/v1/events/" + eventID + "/registrations"
}
