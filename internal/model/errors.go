package model

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const problemTypeBase = "https://api.mahostav.in/errors/"

// ErrorCode represents API error codes
type ErrorCode int

const (
	// Authentication errors (1xxx)
	ErrCodeUnauthorized ErrorCode = 1001
	ErrCodeTokenExpired ErrorCode = 1002
	ErrCodeTokenInvalid ErrorCode = 1003
	ErrCodeLoginFailed  ErrorCode = 1004

	// Authorization errors (2xxx)
	ErrCodeForbidden             ErrorCode = 2001
	ErrCodeNotOwner              ErrorCode = 2002
	ErrCodeParticipantIDRequired ErrorCode = 2003

	// Resource errors (3xxx)
	ErrCodeNotFound             ErrorCode = 3001
	ErrCodeAlreadyExists        ErrorCode = 3002
	ErrCodeConflict             ErrorCode = 3003
	ErrCodeAlreadyRegistered    ErrorCode = 3004
	ErrCodeDuplicatePlayer      ErrorCode = 3005
	ErrCodeSubmissionInProgress ErrorCode = 3006

	// Validation errors (4xxx)
	ErrCodeValidation   ErrorCode = 4001
	ErrCodeInvalidInput ErrorCode = 4002
	ErrCodeWrongMode    ErrorCode = 4003

	// Internal errors (5xxx)
	ErrCodeInternal    ErrorCode = 5001
	ErrCodeDatabase    ErrorCode = 5002
	ErrCodeExternalAPI ErrorCode = 5003
)

// ProblemDetails represents RFC 9457 Problem Details for HTTP APIs
type ProblemDetails struct {
	Type     string       `json:"type"`
	Title    string       `json:"title"`
	Status   int          `json:"status"`
	Detail   string       `json:"detail,omitempty"`
	Instance string       `json:"instance,omitempty"`
	Errors   []FieldError `json:"errors,omitempty"`
	// Extension fields
	Code       ErrorCode         `json:"code,omitempty"`
	Players    []string          `json:"players,omitempty"`
	MahostavID string            `json:"mahostav_id,omitempty"`
	Links      map[string]string `json:"_links,omitempty"`
}

// FieldError represents a validation error on a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (p *ProblemDetails) Error() string {
	return fmt.Sprintf("[%d] %s: %s", p.Status, p.Title, p.Detail)
}

// WriteJSON writes the problem details as JSON response
func (p *ProblemDetails) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// Common error constructors

func NewUnauthorizedError(detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + "unauthorized",
		Title:  "Unauthorized",
		Status: http.StatusUnauthorized,
		Detail: detail,
		Code:   ErrCodeUnauthorized,
	}
}

func NewForbiddenError(detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + "forbidden",
		Title:  "Forbidden",
		Status: http.StatusForbidden,
		Detail: detail,
		Code:   ErrCodeForbidden,
	}
}

// NewParticipantIDRequiredError tells the client to obtain a participant ID
// before registering. generateURL is advertised in _links.generate.
func NewParticipantIDRequiredError(generateURL string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + "participant-id-required",
		Title:  "Participant ID Required",
		Status: http.StatusForbidden,
		Detail: "Generate your MAHOSTAV ID before registering for events",
		Code:   ErrCodeParticipantIDRequired,
		Links:  map[string]string{"generate": generateURL},
	}
}

func NewNotFoundError(resource string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + "not-found",
		Title:  "Not Found",
		Status: http.StatusNotFound,
		Detail: fmt.Sprintf("%s not found", resource),
		Code:   ErrCodeNotFound,
	}
}

func NewValidationError(errors []FieldError) *ProblemDetails {
	detail := "One or more fields failed validation"
	if len(errors) > 0 {
		detail = fmt.Sprintf("%s: %s", errors[0].Field, errors[0].Message)
		if len(errors) > 1 {
			detail = fmt.Sprintf("%s (and %d more errors)", detail, len(errors)-1)
		}
	}
	return &ProblemDetails{
		Type:   problemTypeBase + "validation",
		Title:  "Validation Error",
		Status: http.StatusUnprocessableEntity,
		Detail: detail,
		Code:   ErrCodeValidation,
		Errors: errors,
	}
}

func NewConflictError(detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + "conflict",
		Title:  "Conflict",
		Status: http.StatusConflict,
		Detail: detail,
		Code:   ErrCodeConflict,
	}
}

func NewAlreadyRegisteredError() *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + "already-registered",
		Title:  "Already Registered",
		Status: http.StatusConflict,
		Detail: "You have already registered for this event",
		Code:   ErrCodeAlreadyRegistered,
	}
}

// NewDuplicatePlayerError lists the players already on another team for the event
func NewDuplicatePlayerError(players []string) *ProblemDetails {
	detail := "Another team claimed one of these players while this registration was being saved"
	if len(players) > 0 {
		detail = fmt.Sprintf("Players already registered in another team: %s", strings.Join(players, ", "))
	}
	return &ProblemDetails{
		Type:    problemTypeBase + "duplicate-player",
		Title:   "Duplicate Player",
		Status:  http.StatusConflict,
		Detail:  detail,
		Code:    ErrCodeDuplicatePlayer,
		Players: players,
	}
}

func NewSubmissionInProgressError() *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + "submission-in-progress",
		Title:  "Submission In Progress",
		Status: http.StatusConflict,
		Detail: "A registration for this event is already being submitted",
		Code:   ErrCodeSubmissionInProgress,
	}
}

// NewWrongModeError is returned when a solo form is used for a team event or vice versa
func NewWrongModeError(detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + "wrong-registration-mode",
		Title:  "Wrong Registration Mode",
		Status: http.StatusUnprocessableEntity,
		Detail: detail,
		Code:   ErrCodeWrongMode,
	}
}

func NewInternalError(detail string) *ProblemDetails {
	if detail == "" {
		detail = "An unexpected error occurred"
	}
	return &ProblemDetails{
		Type:   problemTypeBase + "internal",
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
		Detail: detail,
		Code:   ErrCodeInternal,
	}
}

// NewStoreError reports a failure returned by the backing store
func NewStoreError() *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + "store",
		Title:  "Bad Gateway",
		Status: http.StatusBadGateway,
		Detail: "The registration store could not complete the request",
		Code:   ErrCodeDatabase,
	}
}

func NewBadRequestError(detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + "bad-request",
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
		Detail: detail,
		Code:   ErrCodeInvalidInput,
	}
}

func NewRateLimitError(retryAfter int) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + "rate-limited",
		Title:  "Too Many Requests",
		Status: http.StatusTooManyRequests,
		Detail: fmt.Sprintf("Rate limit exceeded. Retry after %d seconds", retryAfter),
	}
}
