package jobs

import (
	"context"
	"time"
)

// TokenCleaner removes expired refresh tokens
type TokenCleaner interface {
	CleanupExpired(ctx context.Context) error
}

// TokenCleanup periodically purges expired and long-revoked refresh tokens
type TokenCleanup struct {
	cleaner  TokenCleaner
	interval time.Duration
}

// NewTokenCleanup creates the job. The interval defaults to one hour.
func NewTokenCleanup(cleaner TokenCleaner, interval time.Duration) *TokenCleanup {
	if interval == 0 {
		interval = time.Hour
	}
	return &TokenCleanup{cleaner: cleaner, interval: interval}
}

// Name implements Job
func (j *TokenCleanup) Name() string { return "refresh-token-cleanup" }

// Interval implements Job
func (j *TokenCleanup) Interval() time.Duration { return j.interval }

// Run implements Job
func (j *TokenCleanup) Run(ctx context.Context) error {
	return j.cleaner.CleanupExpired(ctx)
}
