package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"sync"
	"testing"
	"time"

	"github.com/mahostav/api/internal/model"
	"github.com/mahostav/api/pkg/jwt"
)

// ============================================================================
// Token Repository
// ============================================================================

type mockTokenRepo struct {
	createRefreshTokenFunc    func(ctx context.Context, token *RefreshToken) error
	getRefreshTokenByHashFunc func(ctx context.Context, hash string) (*RefreshToken, error)
	revokeRefreshTokenFunc    func(ctx context.Context, hash string) error
	revokeAllUserTokensFunc   func(ctx context.Context, userID string) error
	deleteExpiredTokensFunc   func(ctx context.Context) error
}

func (m *mockTokenRepo) CreateRefreshToken(ctx context.Context, token *RefreshToken) error {
	if m.createRefreshTokenFunc != nil {
		return m.createRefreshTokenFunc(ctx, token)
	}
	return nil
}

func (m *mockTokenRepo) GetRefreshTokenByHash(ctx context.Context, hash string) (*RefreshToken, error) {
	if m.getRefreshTokenByHashFunc != nil {
		return m.getRefreshTokenByHashFunc(ctx, hash)
	}
	return nil, nil
}

func (m *mockTokenRepo) RevokeRefreshToken(ctx context.Context, hash string) error {
	if m.revokeRefreshTokenFunc != nil {
		return m.revokeRefreshTokenFunc(ctx, hash)
	}
	return nil
}

func (m *mockTokenRepo) RevokeAllUserTokens(ctx context.Context, userID string) error {
	if m.revokeAllUserTokensFunc != nil {
		return m.revokeAllUserTokensFunc(ctx, userID)
	}
	return nil
}

func (m *mockTokenRepo) DeleteExpiredTokens(ctx context.Context) error {
	if m.deleteExpiredTokensFunc != nil {
		return m.deleteExpiredTokensFunc(ctx)
	}
	return nil
}

// ============================================================================
// User Repository (in memory)
// ============================================================================

type mockUserRepo struct {
	mu         sync.Mutex
	users      map[string]*model.User
	profiles   map[string]*model.Profile
	roles      map[string]model.ParticipantRole
	createErr  error
	getErr     error
	touchCalls int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:    make(map[string]*model.User),
		profiles: make(map[string]*model.Profile),
		roles:    make(map[string]model.ParticipantRole),
	}
}

func (m *mockUserRepo) CreateAccount(ctx context.Context, user *model.User, profile *model.Profile, role model.ParticipantRole) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = "user:" + user.Email
	user.CreatedOn = time.Now()
	profile.UserID = user.ID
	m.users[user.ID] = user
	m.profiles[user.ID] = profile
	m.roles[user.ID] = role
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.users[id], nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) TouchLogin(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touchCalls++
	return nil
}

func (m *mockUserRepo) add(id, email string) *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &model.User{ID: id, Email: email}
	m.users[id] = u
	return u
}

// ============================================================================
// Profile Repository
// ============================================================================

type mockProfileRepo struct {
	getByUserIDFunc           func(ctx context.Context, userID string) (*model.Profile, error)
	getRoleFunc               func(ctx context.Context, userID string) (model.ParticipantRole, error)
	generateParticipantIDFunc func(ctx context.Context, userID string) (string, error)
}

func (m *mockProfileRepo) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	if m.getByUserIDFunc != nil {
		return m.getByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockProfileRepo) GetRole(ctx context.Context, userID string) (model.ParticipantRole, error) {
	if m.getRoleFunc != nil {
		return m.getRoleFunc(ctx, userID)
	}
	return "", nil
}

func (m *mockProfileRepo) GenerateParticipantID(ctx context.Context, userID string) (string, error) {
	if m.generateParticipantIDFunc != nil {
		return m.generateParticipantIDFunc(ctx, userID)
	}
	return "", nil
}

// ============================================================================
// Event Repositories
// ============================================================================

type mockEventRepo struct {
	getByIDFunc    func(ctx context.Context, id string) (*model.Event, error)
	listByTypeFunc func(ctx context.Context, typ model.EventType) ([]*model.Event, error)
}

func (m *mockEventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockEventRepo) ListByType(ctx context.Context, typ model.EventType) ([]*model.Event, error) {
	if m.listByTypeFunc != nil {
		return m.listByTypeFunc(ctx, typ)
	}
	return nil, nil
}

type mockRegisteredRepo struct {
	ids []string
	err error
}

func (m *mockRegisteredRepo) RegisteredEventIDs(ctx context.Context, userID string) ([]string, error) {
	return m.ids, m.err
}

// ============================================================================
// Registration and Team Repositories
// ============================================================================

type mockRegistrationRepo struct {
	mu                    sync.Mutex
	createCalls           int
	getByUserAndEventFunc func(ctx context.Context, userID, eventID string) (*model.Registration, error)
	getByIDFunc           func(ctx context.Context, id string) (*model.Registration, error)
	createFunc            func(ctx context.Context, reg *model.Registration) error
	deleteFunc            func(ctx context.Context, id string) error
	listByUserFunc        func(ctx context.Context, userID string) ([]*model.RegistrationWithEvent, error)
}

func (m *mockRegistrationRepo) GetByUserAndEvent(ctx context.Context, userID, eventID string) (*model.Registration, error) {
	if m.getByUserAndEventFunc != nil {
		return m.getByUserAndEventFunc(ctx, userID, eventID)
	}
	return nil, nil
}

func (m *mockRegistrationRepo) GetByID(ctx context.Context, id string) (*model.Registration, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockRegistrationRepo) Create(ctx context.Context, reg *model.Registration) error {
	m.mu.Lock()
	m.createCalls++
	m.mu.Unlock()
	if m.createFunc != nil {
		return m.createFunc(ctx, reg)
	}
	reg.ID = "registration:r1"
	reg.RegisteredAt = time.Now()
	return nil
}

func (m *mockRegistrationRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockRegistrationRepo) ListByUser(ctx context.Context, userID string) ([]*model.RegistrationWithEvent, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockRegistrationRepo) creates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

type mockTeamRepo struct {
	mu                    sync.Mutex
	created               []*model.NewTeam
	generateCalls         int
	membersByEventFunc    func(ctx context.Context, eventID string) ([]*model.TeamMember, error)
	generateTeamIDFunc    func(ctx context.Context) (string, error)
	createWithMembersFunc func(ctx context.Context, nt *model.NewTeam) (*model.TeamWithMembers, error)
	listByUserFunc        func(ctx context.Context, userID string) ([]*model.TeamWithMembers, error)
}

func (m *mockTeamRepo) MembersByEvent(ctx context.Context, eventID string) ([]*model.TeamMember, error) {
	if m.membersByEventFunc != nil {
		return m.membersByEventFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *mockTeamRepo) GenerateTeamID(ctx context.Context) (string, error) {
	m.mu.Lock()
	m.generateCalls++
	m.mu.Unlock()
	if m.generateTeamIDFunc != nil {
		return m.generateTeamIDFunc(ctx)
	}
	return "TEAM1001", nil
}

func (m *mockTeamRepo) CreateWithMembers(ctx context.Context, nt *model.NewTeam) (*model.TeamWithMembers, error) {
	m.mu.Lock()
	m.created = append(m.created, nt)
	m.mu.Unlock()
	if m.createWithMembersFunc != nil {
		return m.createWithMembersFunc(ctx, nt)
	}
	team := *nt.Team
	team.ID = "team_registration:t1"
	for _, member := range nt.Members {
		member.TeamRegistrationID = team.ID
	}
	return &model.TeamWithMembers{TeamRegistration: &team, Members: nt.Members}, nil
}

func (m *mockTeamRepo) ListByUser(ctx context.Context, userID string) ([]*model.TeamWithMembers, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockTeamRepo) writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.created)
}

// ============================================================================
// Recorder
// ============================================================================

type recordedAttempt struct {
	mode    model.RegistrationMode
	outcome string
}

type mockRecorder struct {
	mu       sync.Mutex
	attempts []recordedAttempt
}

func (m *mockRecorder) RegistrationAttempt(mode model.RegistrationMode, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, recordedAttempt{mode: mode, outcome: outcome})
}

func (m *mockRecorder) last() recordedAttempt {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.attempts) == 0 {
		return recordedAttempt{}
	}
	return m.attempts[len(m.attempts)-1]
}

// ============================================================================
// Helpers
// ============================================================================

func createTestJWTService(t *testing.T) *jwt.Service {
	t.Helper()
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}
	return jwt.NewTestService(privateKey, "test-issuer", time.Hour)
}

func strPtr(s string) *string { return &s }
