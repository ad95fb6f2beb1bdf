package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahostav/api/internal/model"
	"github.com/mahostav/api/pkg/jwt"
)

type mockValidator struct {
	claims *model.TokenClaims
	err    error
	got    string
}

func (m *mockValidator) ValidateAccessToken(token string) (*model.TokenClaims, error) {
	m.got = token
	return m.claims, m.err
}

// captureHandler records the request context it was called with
type captureHandler struct {
	called bool
	ctx    context.Context
}

func (h *captureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) model.ProblemDetails {
	t.Helper()
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	var p model.ProblemDetails
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	return p
}

func TestAuth_RejectsBadHeaders(t *testing.T) {
	t.Parallel()

	for _, header := range []string{"", "token-only", "Bearer", "Bearer   ", "Basic abc"} {
		t.Run(header, func(t *testing.T) {
			t.Parallel()
			next := &captureHandler{}
			validator := &mockValidator{claims: &model.TokenClaims{UserID: "user:1"}}

			req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			Auth(validator)(next).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, next.called)
			assert.Equal(t, model.ErrCodeUnauthorized, decodeProblem(t, rec).Code)
		})
	}
}

func TestAuth_TokenErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err    error
		detail string
	}{
		{jwt.ErrTokenExpired, "token expired"},
		{jwt.ErrInvalidSignature, "invalid token signature"},
		{errors.New("boom"), "invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.detail, func(t *testing.T) {
			t.Parallel()
			next := &captureHandler{}

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer abc")
			rec := httptest.NewRecorder()
			Auth(&mockValidator{err: tt.err})(next).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.detail, decodeProblem(t, rec).Detail)
			assert.False(t, next.called)
		})
	}
}

func TestAuth_ValidToken_StoresClaims(t *testing.T) {
	t.Parallel()
	next := &captureHandler{}
	exp := time.Now().Add(time.Hour)
	validator := &mockValidator{claims: &model.TokenClaims{UserID: "user:1", Email: "a@b.co", ExpiresAt: exp}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer  the-token")
	rec := httptest.NewRecorder()
	Auth(validator)(next).ServeHTTP(rec, req)

	require.True(t, next.called)
	assert.Equal(t, "the-token", validator.got)
	assert.Equal(t, "user:1", GetUserID(next.ctx))
	assert.Equal(t, "a@b.co", GetClaims(next.ctx).Email)
}

func TestAuth_EmptySubject(t *testing.T) {
	t.Parallel()
	next := &captureHandler{}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rec := httptest.NewRecorder()
	Auth(&mockValidator{claims: &model.TokenClaims{}})(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, next.called)
}

func TestContextAccessors_Empty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	assert.Nil(t, GetClaims(ctx))
	assert.Empty(t, GetUserID(ctx))
	assert.Nil(t, GetProfile(ctx))
	assert.Empty(t, GetRequestID(ctx))

	ctx = context.WithValue(ctx, ClaimsKey, "not claims")
	assert.Nil(t, GetClaims(ctx))
}
