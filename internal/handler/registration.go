package handler

import (
	"context"
	"net/http"

	"github.com/mahostav/api/internal/middleware"
	"github.com/mahostav/api/internal/model"
)

// RegistrationService is the part of service.RegistrationService used by
// RegistrationHandler
type RegistrationService interface {
	RegisterSolo(ctx context.Context, userID, eventID string, req model.SoloRegistrationRequest) (*model.Registration, error)
	RegisterTeam(ctx context.Context, userID, eventID string, req model.TeamRegistrationRequest) (*model.TeamWithMembers, error)
	ListMine(ctx context.Context, userID string) (*model.MyRegistrations, error)
	Delete(ctx context.Context, userID, registrationID string) error
}

// RegistrationHandler handles solo and team registrations. Every route runs
// behind middleware.RequireParticipant.
type RegistrationHandler struct {
	registrationService RegistrationService
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(registrationService RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
	}
}

// RegisterSolo handles POST /v1/events/{eventId}/registrations
func (h *RegistrationHandler) RegisterSolo(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.SoloRegistrationRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	reg, err := h.registrationService.RegisterSolo(r.Context(), userID, r.PathValue("eventId"), req)
	if err != nil {
		writeServiceError(w, r, "register solo", err)
		return
	}

	WriteData(w, http.StatusCreated, reg, map[string]string{
		"event":         "/v1/events/" + reg.EventID,
		"registrations": "/v1/registrations",
	})
}

// RegisterTeam handles POST /v1/events/{eventId}/teams
func (h *RegistrationHandler) RegisterTeam(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.TeamRegistrationRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	team, err := h.registrationService.RegisterTeam(r.Context(), userID, r.PathValue("eventId"), req)
	if err != nil {
		writeServiceError(w, r, "register team", err)
		return
	}

	WriteData(w, http.StatusCreated, team, map[string]string{
		"event":         "/v1/events/" + team.EventID,
		"registrations": "/v1/registrations",
	})
}

// ListMine handles GET /v1/registrations
func (h *RegistrationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	mine, err := h.registrationService.ListMine(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, "list registrations", err)
		return
	}

	WriteData(w, http.StatusOK, mine, map[string]string{
		"self":     "/v1/registrations",
		"sports":   "/v1/events?type=" + string(model.EventTypeSports),
		"cultural": "/v1/events?type=" + string(model.EventTypeCultural),
	})
}

// Delete handles DELETE /v1/registrations/{registrationId}
func (h *RegistrationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	if err := h.registrationService.Delete(r.Context(), userID, r.PathValue("registrationId")); err != nil {
		writeServiceError(w, r, "delete registration", err)
		return
	}

	WriteNoContent(w)
}
