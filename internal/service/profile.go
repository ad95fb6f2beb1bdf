package service

import (
	"context"
	"log/slog"

	"github.com/mahostav/api/internal/model"
)

// ProfileRepository defines the interface for profile storage
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*model.Profile, error)
	GetRole(ctx context.Context, userID string) (model.ParticipantRole, error)
	GenerateParticipantID(ctx context.Context, userID string) (string, error)
}

// ProfileService handles the participant profile and its participant ID
type ProfileService struct {
	profileRepo ProfileRepository
}

// ProfileServiceConfig holds configuration for the profile service
type ProfileServiceConfig struct {
	ProfileRepo ProfileRepository
}

// NewProfileService creates a new profile service
func NewProfileService(cfg ProfileServiceConfig) *ProfileService {
	return &ProfileService{profileRepo: cfg.ProfileRepo}
}

// GetProfile returns the caller's profile
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// Get returns the caller's profile together with their role
func (s *ProfileService) Get(ctx context.Context, userID string) (*model.ProfileView, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	role, err := s.profileRepo.GetRole(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.ProfileView{Profile: profile, Role: role}, nil
}

// GenerateParticipantID issues a participant ID for a profile that has none.
// A profile that already holds one gets a ParticipantIDExistsError.
func (s *ProfileService) GenerateParticipantID(ctx context.Context, userID string) (*model.ParticipantID, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.HasParticipantID() {
		return nil, &ParticipantIDExistsError{MahostavID: *profile.MahostavID}
	}

	id, err := s.profileRepo.GenerateParticipantID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ErrParticipantIDMalformed
	}

	slog.InfoContext(ctx, "participant id issued", "user_id", userID, "mahostav_id", id)
	return &model.ParticipantID{MahostavID: id}, nil
}
