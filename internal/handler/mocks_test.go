package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mahostav/api/internal/middleware"
	"github.com/mahostav/api/internal/model"
	"github.com/mahostav/api/internal/service"
)

// ============================================================================
// Mock AuthService
// ============================================================================

type mockAuthService struct {
	signUpFunc        func(ctx context.Context, req model.SignUpRequest) (*service.AuthResult, error)
	loginFunc         func(ctx context.Context, req model.LoginRequest) (*service.AuthResult, error)
	refreshTokensFunc func(ctx context.Context, refreshToken string) (*model.TokenPair, error)
	logoutFunc        func(ctx context.Context, userID string) error
	sessionFunc       func(ctx context.Context, claims *model.TokenClaims) (*model.Session, error)
}

func (m *mockAuthService) SignUp(ctx context.Context, req model.SignUpRequest) (*service.AuthResult, error) {
	if m.signUpFunc != nil {
		return m.signUpFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockAuthService) Login(ctx context.Context, req model.LoginRequest) (*service.AuthResult, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	if m.refreshTokensFunc != nil {
		return m.refreshTokensFunc(ctx, refreshToken)
	}
	return nil, nil
}

func (m *mockAuthService) Logout(ctx context.Context, userID string) error {
	if m.logoutFunc != nil {
		return m.logoutFunc(ctx, userID)
	}
	return nil
}

func (m *mockAuthService) Session(ctx context.Context, claims *model.TokenClaims) (*model.Session, error) {
	if m.sessionFunc != nil {
		return m.sessionFunc(ctx, claims)
	}
	return nil, nil
}

// ============================================================================
// Mock ProfileService
// ============================================================================

type mockProfileService struct {
	getFunc                   func(ctx context.Context, userID string) (*model.ProfileView, error)
	generateParticipantIDFunc func(ctx context.Context, userID string) (*model.ParticipantID, error)
}

func (m *mockProfileService) Get(ctx context.Context, userID string) (*model.ProfileView, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockProfileService) GenerateParticipantID(ctx context.Context, userID string) (*model.ParticipantID, error) {
	if m.generateParticipantIDFunc != nil {
		return m.generateParticipantIDFunc(ctx, userID)
	}
	return nil, nil
}

// ============================================================================
// Mock EventService
// ============================================================================

type mockEventService struct {
	listFunc func(ctx context.Context, userID, category string) ([]*model.EventWithStatus, error)
	getFunc  func(ctx context.Context, userID, eventID string) (*model.EventWithStatus, error)
	formFunc func(ctx context.Context, eventID string) (*model.RegistrationForm, error)
}

func (m *mockEventService) List(ctx context.Context, userID, category string) ([]*model.EventWithStatus, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, category)
	}
	return nil, nil
}

func (m *mockEventService) Get(ctx context.Context, userID, eventID string) (*model.EventWithStatus, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID, eventID)
	}
	return nil, nil
}

func (m *mockEventService) Form(ctx context.Context, eventID string) (*model.RegistrationForm, error) {
	if m.formFunc != nil {
		return m.formFunc(ctx, eventID)
	}
	return nil, nil
}

// ============================================================================
// Mock RegistrationService
// ============================================================================

type mockRegistrationService struct {
	registerSoloFunc func(ctx context.Context, userID, eventID string, req model.SoloRegistrationRequest) (*model.Registration, error)
	registerTeamFunc func(ctx context.Context, userID, eventID string, req model.TeamRegistrationRequest) (*model.TeamWithMembers, error)
	listMineFunc     func(ctx context.Context, userID string) (*model.MyRegistrations, error)
	deleteFunc       func(ctx context.Context, userID, registrationID string) error
}

func (m *mockRegistrationService) RegisterSolo(ctx context.Context, userID, eventID string, req model.SoloRegistrationRequest) (*model.Registration, error) {
	if m.registerSoloFunc != nil {
		return m.registerSoloFunc(ctx, userID, eventID, req)
	}
	return nil, nil
}

func (m *mockRegistrationService) RegisterTeam(ctx context.Context, userID, eventID string, req model.TeamRegistrationRequest) (*model.TeamWithMembers, error) {
	if m.registerTeamFunc != nil {
		return m.registerTeamFunc(ctx, userID, eventID, req)
	}
	return nil, nil
}

func (m *mockRegistrationService) ListMine(ctx context.Context, userID string) (*model.MyRegistrations, error) {
	if m.listMineFunc != nil {
		return m.listMineFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockRegistrationService) Delete(ctx context.Context, userID, registrationID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, registrationID)
	}
	return nil
}

// ============================================================================
// Test Helpers
// ============================================================================

func newTestUser() *model.User {
	now := time.Now()
	return &model.User{
		ID:        "user:123",
		Email:     "test@example.com",
		CreatedOn: now,
		UpdatedOn: now,
	}
}

func newTestTokenPair() *model.TokenPair {
	return &model.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}
}

func stringPtr(s string) *string {
	return &s
}

func makeJSONRequest(method, path string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withUserContext(req *http.Request, userID string) *http.Request {
	ctx := middleware.WithClaims(req.Context(), &model.TokenClaims{
		UserID:    userID,
		Email:     "test@example.com",
		ExpiresAt: time.Now().Add(15 * time.Minute),
	})
	return req.WithContext(ctx)
}

func parseErrorResponse(t *testing.T, body []byte) *model.ProblemDetails {
	t.Helper()
	var problem model.ProblemDetails
	if err := json.Unmarshal(body, &problem); err != nil {
		t.Fatalf("failed to parse error response: %v", err)
	}
	return &problem
}

// dataEnvelope decodes a DataResponse with a typed payload
type dataEnvelope[T any] struct {
	Data  T                 `json:"data"`
	Links map[string]string `json:"_links"`
}

func parseData[T any](t *testing.T, body []byte) dataEnvelope[T] {
	t.Helper()
	var env dataEnvelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("failed to parse data response: %v", err)
	}
	return env
}
