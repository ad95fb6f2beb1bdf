package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mahostav/api/internal/database"
	"github.com/mahostav/api/internal/middleware"
	"github.com/mahostav/api/internal/model"
	"github.com/mahostav/api/internal/service"
)

// participantIDPath is where a participant ID is generated
const participantIDPath = "/v1/profile/participant-id"

// MapServiceError converts a service error to a ProblemDetails response.
// Every handler goes through here so status codes stay consistent.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	// Typed errors carry extra fields for the client
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return model.NewValidationError(validationErr.Fields)
	}
	var duplicateErr *service.DuplicatePlayerError
	if errors.As(err, &duplicateErr) {
		return model.NewDuplicatePlayerError(duplicateErr.Players)
	}
	var existsErr *service.ParticipantIDExistsError
	if errors.As(err, &existsErr) {
		pd := model.NewConflictError(err.Error())
		pd.MahostavID = existsErr.MahostavID
		pd.Links = map[string]string{"profile": "/v1/profile"}
		return pd
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUnauthorized):
		return model.NewUnauthorizedError(err.Error())
	case errors.Is(err, service.ErrInvalidRefreshToken),
		errors.Is(err, service.ErrRefreshTokenExpired),
		errors.Is(err, service.ErrRefreshTokenRevoked):
		return model.NewUnauthorizedError(err.Error())

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrNotRegistrationOwner):
		return model.NewForbiddenError(err.Error())
	case errors.Is(err, service.ErrParticipantIDRequired):
		return model.NewParticipantIDRequiredError(participantIDPath)

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("User")
	case errors.Is(err, service.ErrProfileNotFound):
		return model.NewNotFoundError("Profile")
	case errors.Is(err, service.ErrEventNotFound):
		return model.NewNotFoundError("Event")
	case errors.Is(err, service.ErrRegistrationNotFound):
		return model.NewNotFoundError("Registration")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return model.NewConflictError(err.Error())
	case errors.Is(err, service.ErrAlreadyRegistered):
		return model.NewAlreadyRegisteredError()
	case errors.Is(err, service.ErrDuplicatePlayer):
		return model.NewDuplicatePlayerError(nil)
	case errors.Is(err, service.ErrSubmissionInProgress):
		return model.NewSubmissionInProgressError()
	case errors.Is(err, service.ErrParticipantIDExists):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 / 400 =====
	case errors.Is(err, service.ErrValidation):
		return model.NewValidationError(nil)
	case errors.Is(err, service.ErrTeamEventRequiresTeam),
		errors.Is(err, service.ErrSoloEventRequiresSolo):
		return model.NewWrongModeError(err.Error())
	case errors.Is(err, service.ErrInvalidEventType):
		return model.NewBadRequestError(err.Error())

	// ===== Store Errors → 502 =====
	case errors.Is(err, service.ErrParticipantIDMalformed),
		errors.Is(err, database.ErrConnection),
		errors.Is(err, database.ErrQuery):
		return model.NewStoreError()

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// writeServiceError maps err and writes it. Server-side failures are logged
// with the request ID; client errors are not.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	pd := MapServiceError(err)
	if pd.Status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"op", op,
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err,
		)
	}
	WriteError(w, pd)
}
