package jobs

import (
	"context"
	"log/slog"
	"time"
)

// OrphanRepository deletes team registrations that never received members
type OrphanRepository interface {
	DeleteOrphans(ctx context.Context, cutoff time.Time) (int, error)
}

// OrphanRecorder counts deleted orphans
type OrphanRecorder interface {
	OrphansDeleted(n int)
}

// OrphanTeamSweeper removes member-less team rows older than a grace period.
// Team writes are transactional, so any such row is a leftover from an older
// writer or a manual edit.
type OrphanTeamSweeper struct {
	repo     OrphanRepository
	recorder OrphanRecorder
	interval time.Duration
	grace    time.Duration
	now      func() time.Time
}

// OrphanSweeperConfig holds configuration for the sweeper
type OrphanSweeperConfig struct {
	Repo     OrphanRepository
	Recorder OrphanRecorder // optional
	Interval time.Duration  // Default: 5 minutes
	Grace    time.Duration  // Default: 10 minutes
}

// NewOrphanTeamSweeper creates a new sweeper job
func NewOrphanTeamSweeper(cfg OrphanSweeperConfig) *OrphanTeamSweeper {
	if cfg.Interval == 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.Grace == 0 {
		cfg.Grace = 10 * time.Minute
	}
	return &OrphanTeamSweeper{
		repo:     cfg.Repo,
		recorder: cfg.Recorder,
		interval: cfg.Interval,
		grace:    cfg.Grace,
		now:      time.Now,
	}
}

// Name implements Job
func (s *OrphanTeamSweeper) Name() string { return "orphan-team-sweeper" }

// Interval implements Job
func (s *OrphanTeamSweeper) Interval() time.Duration { return s.interval }

// Run deletes orphans created before now minus the grace period
func (s *OrphanTeamSweeper) Run(ctx context.Context) error {
	cutoff := s.now().Add(-s.grace)

	n, err := s.repo.DeleteOrphans(ctx, cutoff)
	if err != nil {
		return err
	}
	if n > 0 {
		slog.WarnContext(ctx, "deleted orphan team registrations", "count", n, "cutoff", cutoff)
	}
	if s.recorder != nil {
		s.recorder.OrphansDeleted(n)
	}
	return nil
}
