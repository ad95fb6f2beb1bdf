package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mahostav/api/internal/model"
)

// Centralized service layer errors.
// All errors returned by service methods are defined here so handlers can map
// them to problem details in one place.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthorized       = errors.New("you must be logged in")
)

// ===== Token Errors =====
var (
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
)

// ===== Profile Errors =====
var (
	ErrProfileNotFound        = errors.New("profile not found")
	ErrParticipantIDRequired  = errors.New("participant ID required")
	ErrParticipantIDExists    = errors.New("participant ID already issued")
	ErrParticipantIDMalformed = errors.New("participant ID generator returned an empty value")
)

// ===== Event Errors =====
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrInvalidEventType = errors.New("event type must be sports or cultural")
)

// ===== Registration Errors =====
var (
	ErrValidation            = errors.New("validation failed")
	ErrAlreadyRegistered     = errors.New("already registered for this event")
	ErrRegistrationNotFound  = errors.New("registration not found")
	ErrNotRegistrationOwner  = errors.New("registration belongs to another user")
	ErrTeamEventRequiresTeam = errors.New("this is a team event; register with a team")
	ErrSoloEventRequiresSolo = errors.New("this is an individual event; register solo")
	ErrDuplicatePlayer       = errors.New("players already registered in another team")
	ErrSubmissionInProgress  = errors.New("a registration for this event is already being submitted")
)

// ValidationError carries field errors found by the service
type ValidationError struct {
	Fields []model.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// DuplicatePlayerError names the players that already appear on another
// roster for the same event. Players is empty when the store rejected the
// roster after the pre-check passed.
type DuplicatePlayerError struct {
	Players []string
}

func (e *DuplicatePlayerError) Error() string {
	if len(e.Players) == 0 {
		return "another team claimed a player for this event"
	}
	return fmt.Sprintf("%s: %s", ErrDuplicatePlayer, strings.Join(e.Players, ", "))
}

func (e *DuplicatePlayerError) Unwrap() error { return ErrDuplicatePlayer }

// ParticipantIDExistsError reports the identifier already held by the user
type ParticipantIDExistsError struct {
	MahostavID string
}

func (e *ParticipantIDExistsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrParticipantIDExists, e.MahostavID)
}

func (e *ParticipantIDExistsError) Unwrap() error { return ErrParticipantIDExists }
