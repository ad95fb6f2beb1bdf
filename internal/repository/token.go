package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mahostav/api/internal/database"
	"github.com/mahostav/api/internal/service"
)

// TokenRepository handles refresh token data access
type TokenRepository struct {
	db database.Database
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db database.Database) *TokenRepository {
	return &TokenRepository{db: db}
}

// CreateRefreshToken stores a new refresh token
func (r *TokenRepository) CreateRefreshToken(ctx context.Context, token *service.RefreshToken) error {
	query := `
		CREATE refresh_token CONTENT {
			user: type::record($user),
			token_hash: $token_hash,
			expires_at: <datetime>$expires_at,
			created_at: time::now(),
			revoked: false
		}
	`
	vars := map[string]interface{}{
		"user":       token.UserID,
		"token_hash": token.TokenHash,
		"expires_at": token.ExpiresAt.UTC().Format(time.RFC3339),
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return err
	}
	row, err := asRow(result)
	if err != nil {
		return err
	}

	token.ID = getID(row, "id")
	token.CreatedAt = getTimeValue(row, "created_at")
	return nil
}

// GetRefreshTokenByHash retrieves a refresh token by its hash
func (r *TokenRepository) GetRefreshTokenByHash(ctx context.Context, hash string) (*service.RefreshToken, error) {
	query := `SELECT * FROM refresh_token WHERE token_hash = $hash LIMIT 1`

	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"hash": hash})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	row, err := asRow(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	revoked, _ := row["revoked"].(bool)
	return &service.RefreshToken{
		ID:        getID(row, "id"),
		UserID:    getID(row, "user"),
		TokenHash: getString(row, "token_hash"),
		ExpiresAt: getTimeValue(row, "expires_at"),
		CreatedAt: getTimeValue(row, "created_at"),
		Revoked:   revoked,
	}, nil
}

// RevokeRefreshToken marks a refresh token as revoked
func (r *TokenRepository) RevokeRefreshToken(ctx context.Context, hash string) error {
	query := `UPDATE refresh_token SET revoked = true WHERE token_hash = $hash`
	return r.db.Execute(ctx, query, map[string]interface{}{"hash": hash})
}

// RevokeAllUserTokens revokes all refresh tokens for a user
func (r *TokenRepository) RevokeAllUserTokens(ctx context.Context, userID string) error {
	query := `UPDATE refresh_token SET revoked = true WHERE user = type::record($user)`
	return r.db.Execute(ctx, query, map[string]interface{}{"user": userID})
}

// DeleteExpiredTokens removes expired tokens and tokens revoked more than a week ago
func (r *TokenRepository) DeleteExpiredTokens(ctx context.Context) error {
	cutoff := time.Now().Add(-7 * 24 * time.Hour).UTC().Format(time.RFC3339)
	query := `DELETE refresh_token WHERE expires_at < time::now() OR (revoked = true AND created_at < <datetime>$cutoff)`
	return r.db.Execute(ctx, query, map[string]interface{}{"cutoff": cutoff})
}
