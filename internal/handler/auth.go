package handler

import (
	"context"
	"net/http"

	"github.com/mahostav/api/internal/middleware"
	"github.com/mahostav/api/internal/model"
	"github.com/mahostav/api/internal/service"
)

// AuthService is the part of service.AuthService used by AuthHandler
type AuthService interface {
	SignUp(ctx context.Context, req model.SignUpRequest) (*service.AuthResult, error)
	Login(ctx context.Context, req model.LoginRequest) (*service.AuthResult, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*model.TokenPair, error)
	Logout(ctx context.Context, userID string) error
	Session(ctx context.Context, claims *model.TokenClaims) (*model.Session, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// AuthResponse is returned by sign up and login
type AuthResponse struct {
	User  *model.User      `json:"user"`
	Token *model.TokenPair `json:"token"`
}

// SignUp handles POST /v1/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req model.SignUpRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.authService.SignUp(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, "signup", err)
		return
	}

	WriteData(w, http.StatusCreated, AuthResponse{User: result.User, Token: result.TokenPair}, map[string]string{
		"session": "/v1/auth/session",
		"profile": "/v1/profile",
	})
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, "login", err)
		return
	}

	WriteData(w, http.StatusOK, AuthResponse{User: result.User, Token: result.TokenPair}, map[string]string{
		"session": "/v1/auth/session",
		"profile": "/v1/profile",
	})
}

// Refresh handles POST /v1/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req model.RefreshRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if errs := model.ValidateStruct(&req); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	tokenPair, err := h.authService.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, "refresh", err)
		return
	}

	WriteData(w, http.StatusOK, tokenPair, nil)
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	if err := h.authService.Logout(r.Context(), userID); err != nil {
		writeServiceError(w, r, "logout", err)
		return
	}

	WriteNoContent(w)
}

// Session handles GET /v1/auth/session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	session, err := h.authService.Session(r.Context(), middleware.GetClaims(r.Context()))
	if err != nil {
		writeServiceError(w, r, "session", err)
		return
	}

	WriteData(w, http.StatusOK, session, map[string]string{
		"self":    "/v1/auth/session",
		"profile": "/v1/profile",
	})
}
