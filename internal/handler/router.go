package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/mahostav/api/internal/middleware"
	"github.com/mahostav/api/internal/model"
	"github.com/mahostav/api/internal/service"
)

// MetricsProvider observes requests and serves the scrape endpoint
type MetricsProvider interface {
	middleware.HTTPObserver
	Handler() http.Handler
}

// ProfileGetter loads the raw profile of a user
type ProfileGetter interface {
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
}

// ParticipantLoader adapts the profile service to middleware.ProfileLoader,
// reporting a missing profile as middleware.ErrNoProfile
func ParticipantLoader(profiles ProfileGetter) middleware.ProfileLoader {
	return middleware.ProfileLoaderFunc(func(ctx context.Context, userID string) (*model.Profile, error) {
		p, err := profiles.GetProfile(ctx, userID)
		if errors.Is(err, service.ErrProfileNotFound) {
			return nil, middleware.ErrNoProfile
		}
		return p, err
	})
}

// RouterConfig holds everything NewRouter wires together. RateLimiter,
// Idempotency and Metrics are optional.
type RouterConfig struct {
	Auth          *AuthHandler
	Profile       *ProfileHandler
	Events        *EventHandler
	Registrations *RegistrationHandler
	Health        *HealthHandler

	TokenValidator middleware.TokenValidator
	ProfileLoader  middleware.ProfileLoader
	RateLimiter    *middleware.RateLimiter
	Idempotency    *middleware.IdempotencyStore
	Metrics        MetricsProvider
	AllowedOrigins []string
}

// NewRouter builds the API handler with its middleware stack
func NewRouter(cfg RouterConfig) http.Handler {
	limit := func(next http.Handler) http.Handler { return next }
	if cfg.RateLimiter != nil {
		limit = middleware.RateLimit(cfg.RateLimiter)
	}
	idempotent := func(next http.Handler) http.Handler { return next }
	if cfg.Idempotency != nil {
		idempotent = middleware.Idempotency(cfg.Idempotency)
	}

	public := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, limit)
	}
	authed := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, middleware.Auth(cfg.TokenValidator), limit)
	}
	participant := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h,
			middleware.Auth(cfg.TokenValidator),
			limit,
			middleware.RequireParticipant(cfg.ProfileLoader, participantIDPath),
			idempotent,
		)
	}

	mux := http.NewServeMux()

	// Health check and metrics
	if cfg.Health != nil {
		mux.HandleFunc("GET /health", cfg.Health.Health)
	}
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
	}

	// Auth endpoints
	mux.Handle("POST /v1/auth/signup", public(cfg.Auth.SignUp))
	mux.Handle("POST /v1/auth/login", public(cfg.Auth.Login))
	mux.Handle("POST /v1/auth/refresh", public(cfg.Auth.Refresh))
	mux.Handle("POST /v1/auth/logout", authed(cfg.Auth.Logout))
	mux.Handle("GET /v1/auth/session", authed(cfg.Auth.Session))

	// Profile endpoints
	mux.Handle("GET /v1/profile", authed(cfg.Profile.Get))
	mux.Handle("POST /v1/profile/participant-id", middleware.Chain(
		http.HandlerFunc(cfg.Profile.GenerateParticipantID),
		middleware.Auth(cfg.TokenValidator), limit, idempotent,
	))

	// Event endpoints
	mux.Handle("GET /v1/events", authed(cfg.Events.List))
	mux.Handle("GET /v1/events/{eventId}", authed(cfg.Events.Get))
	mux.Handle("GET /v1/events/{eventId}/form", participant(cfg.Events.Form))

	// Registration endpoints
	mux.Handle("POST /v1/events/{eventId}/registrations", participant(cfg.Registrations.RegisterSolo))
	mux.Handle("POST /v1/events/{eventId}/teams", participant(cfg.Registrations.RegisterTeam))
	mux.Handle("GET /v1/registrations", participant(cfg.Registrations.ListMine))
	mux.Handle("DELETE /v1/registrations/{registrationId}", participant(cfg.Registrations.Delete))

	var root http.Handler = mux
	if cfg.Metrics != nil {
		root = middleware.Metrics(cfg.Metrics)(mux)
	}

	return middleware.Chain(
		root,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.AllowedOrigins),
		middleware.Compress,
	)
}
