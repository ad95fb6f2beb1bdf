package handler

import (
	"context"
	"net/http"

	"github.com/mahostav/api/internal/middleware"
	"github.com/mahostav/api/internal/model"
)

// ProfileService is the part of service.ProfileService used by ProfileHandler
type ProfileService interface {
	Get(ctx context.Context, userID string) (*model.ProfileView, error)
	GenerateParticipantID(ctx context.Context, userID string) (*model.ParticipantID, error)
}

// ProfileHandler handles profile endpoints
type ProfileHandler struct {
	profileService ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// Get handles GET /v1/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	view, err := h.profileService.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, "get profile", err)
		return
	}

	WriteData(w, http.StatusOK, view, profileLinks(view.Profile))
}

// GenerateParticipantID handles POST /v1/profile/participant-id
func (h *ProfileHandler) GenerateParticipantID(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	id, err := h.profileService.GenerateParticipantID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, "generate participant id", err)
		return
	}

	WriteData(w, http.StatusCreated, id, dashboardLinks())
}

// profileLinks points a participant at the dashboard, everyone else at the
// participant ID generator
func profileLinks(p *model.Profile) map[string]string {
	if !p.HasParticipantID() {
		return map[string]string{
			"self":     "/v1/profile",
			"generate": participantIDPath,
		}
	}
	links := dashboardLinks()
	links["self"] = "/v1/profile"
	return links
}

func dashboardLinks() map[string]string {
	return map[string]string{
		"sports":        "/v1/events?type=" + string(model.EventTypeSports),
		"cultural":      "/v1/events?type=" + string(model.EventTypeCultural),
		"registrations": "/v1/registrations",
	}
}
