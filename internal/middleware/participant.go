package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mahostav/api/internal/model"
)

// ErrNoProfile is returned by a ProfileLoader when the user has no profile
var ErrNoProfile = errors.New("profile not found")

// ProfileLoader loads the profile of a user
type ProfileLoader interface {
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
}

// ProfileLoaderFunc adapts a function to ProfileLoader
type ProfileLoaderFunc func(ctx context.Context, userID string) (*model.Profile, error)

// GetProfile implements ProfileLoader
func (f ProfileLoaderFunc) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	return f(ctx, userID)
}

// RequireParticipant must run after Auth. It loads the caller's profile into
// the context and only lets profiles with a participant ID through.
//
// No profile gives 404. A profile without a participant ID gives 403 with a
// link to generateURL.
func RequireParticipant(loader ProfileLoader, generateURL string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := GetUserID(r.Context())
			if userID == "" {
				model.NewUnauthorizedError("you must be logged in").WriteJSON(w)
				return
			}

			profile, err := loader.GetProfile(r.Context(), userID)
			if err != nil && !errors.Is(err, ErrNoProfile) {
				slog.ErrorContext(r.Context(), "failed to load profile",
					"user_id", userID,
					"request_id", GetRequestID(r.Context()),
					"error", err,
				)
				model.NewInternalError("").WriteJSON(w)
				return
			}
			if profile == nil {
				model.NewNotFoundError("Profile").WriteJSON(w)
				return
			}
			if !profile.HasParticipantID() {
				model.NewParticipantIDRequiredError(generateURL).WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithProfile(r.Context(), profile)))
		})
	}
}

// WithProfile stores the caller's profile in ctx
func WithProfile(ctx context.Context, profile *model.Profile) context.Context {
	return context.WithValue(ctx, ProfileKey, profile)
}

// GetProfile extracts the caller's profile from context
func GetProfile(ctx context.Context) *model.Profile {
	if p, ok := ctx.Value(ProfileKey).(*model.Profile); ok {
		return p
	}
	return nil
}
