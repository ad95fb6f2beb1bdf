package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/mahostav/api/internal/database"
	"github.com/mahostav/api/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost factor
const bcryptCost = 12

// UserRepository defines the interface for account storage
type UserRepository interface {
	CreateAccount(ctx context.Context, user *model.User, profile *model.Profile, role model.ParticipantRole) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	TouchLogin(ctx context.Context, id string) error
}

// AuthService handles account creation and sign in
type AuthService struct {
	userRepo     UserRepository
	tokenService *TokenService
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	UserRepo     UserRepository
	TokenService *TokenService
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		userRepo:     cfg.UserRepo,
		tokenService: cfg.TokenService,
	}
}

// AuthResult is returned by sign up and login
type AuthResult struct {
	User      *model.User
	TokenPair *model.TokenPair
}

// SignUp creates the user, its profile and its role, then signs the user in
func (s *AuthService) SignUp(ctx context.Context, req model.SignUpRequest) (*AuthResult, error) {
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if errs := req.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{Email: req.Email, Hash: &hash}
	profile := &model.Profile{
		Name:  req.Name,
		Email: req.Email,
		Phone: stringPtr(strings.TrimSpace(req.Phone)),
	}
	switch req.Role {
	case model.RoleUniversity:
		profile.UniversityRollNo = stringPtr(strings.TrimSpace(req.UniversityRollNo))
	case model.RoleOutside:
		profile.CollegeName = stringPtr(strings.TrimSpace(req.CollegeName))
	}

	if err := s.userRepo.CreateAccount(ctx, user, profile, req.Role); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	slog.InfoContext(ctx, "account created", "user_id", user.ID, "role", req.Role)

	pair, err := s.tokenService.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, TokenPair: pair}, nil
}

// Login authenticates a user with email and password
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || user.Hash == nil || *user.Hash == "" {
		return nil, ErrInvalidCredentials
	}
	if !checkPassword(req.Password, *user.Hash) {
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.TouchLogin(ctx, user.ID); err != nil {
		slog.WarnContext(ctx, "failed to record login", "user_id", user.ID, "error", err)
	}

	pair, err := s.tokenService.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, TokenPair: pair}, nil
}

// RefreshTokens rotates a refresh token and issues a new pair
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	stored, err := s.tokenService.LookupRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return s.tokenService.RefreshTokens(ctx, refreshToken, user)
}

// Logout revokes the user's refresh tokens
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.tokenService.RevokeAllUserTokens(ctx, userID)
}

// ValidateAccessToken validates an access token and returns the claims
func (s *AuthService) ValidateAccessToken(token string) (*model.TokenClaims, error) {
	claims, err := s.tokenService.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}

	out := &model.TokenClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// Session confirms the account behind the claims still exists
func (s *AuthService) Session(ctx context.Context, claims *model.TokenClaims) (*model.Session, error) {
	if claims == nil || claims.UserID == "" {
		return nil, ErrUnauthorized
	}
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthorized
	}
	return &model.Session{
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: claims.ExpiresAt.UTC().Truncate(time.Second),
	}, nil
}

// Helper functions

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
