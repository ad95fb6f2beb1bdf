package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahostav/api/internal/model"
)

func serveParticipant(t *testing.T, ctx context.Context, loader ProfileLoader) (*httptest.ResponseRecorder, *captureHandler) {
	t.Helper()
	next := &captureHandler{}
	req := httptest.NewRequest(http.MethodGet, "/v1/registrations", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	RequireParticipant(loader, "/v1/profile/participant-id")(next).ServeHTTP(rec, req)
	return rec, next
}

func authedContext() context.Context {
	return WithClaims(context.Background(), &model.TokenClaims{UserID: "user:1"})
}

func TestRequireParticipant_WithID_StoresProfile(t *testing.T) {
	t.Parallel()
	id := "MAH10001"
	loader := ProfileLoaderFunc(func(ctx context.Context, userID string) (*model.Profile, error) {
		assert.Equal(t, "user:1", userID)
		return &model.Profile{UserID: userID, MahostavID: &id}, nil
	})

	rec, next := serveParticipant(t, authedContext(), loader)

	require.True(t, next.called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MAH10001", *GetProfile(next.ctx).MahostavID)
}

func TestRequireParticipant_WithoutID_Forbidden(t *testing.T) {
	t.Parallel()
	loader := ProfileLoaderFunc(func(ctx context.Context, userID string) (*model.Profile, error) {
		return &model.Profile{UserID: userID}, nil
	})

	rec, next := serveParticipant(t, authedContext(), loader)

	assert.False(t, next.called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, model.ErrCodeParticipantIDRequired, p.Code)
	assert.Equal(t, "/v1/profile/participant-id", p.Links["generate"])
}

func TestRequireParticipant_NoProfile_NotFound(t *testing.T) {
	t.Parallel()

	for name, loader := range map[string]ProfileLoader{
		"nil profile": ProfileLoaderFunc(func(ctx context.Context, userID string) (*model.Profile, error) {
			return nil, nil
		}),
		"ErrNoProfile": ProfileLoaderFunc(func(ctx context.Context, userID string) (*model.Profile, error) {
			return nil, ErrNoProfile
		}),
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			rec, next := serveParticipant(t, authedContext(), loader)
			assert.False(t, next.called)
			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestRequireParticipant_LoaderError(t *testing.T) {
	t.Parallel()
	loader := ProfileLoaderFunc(func(ctx context.Context, userID string) (*model.Profile, error) {
		return nil, errors.New("store down")
	})

	rec, next := serveParticipant(t, authedContext(), loader)

	assert.False(t, next.called)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequireParticipant_NoSession(t *testing.T) {
	t.Parallel()
	loader := ProfileLoaderFunc(func(ctx context.Context, userID string) (*model.Profile, error) {
		t.Error("loader must not be called without a session")
		return nil, nil
	})

	rec, _ := serveParticipant(t, context.Background(), loader)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
