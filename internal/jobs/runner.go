package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Job is a unit of background work run on a fixed interval
type Job interface {
	Name() string
	Interval() time.Duration
	Run(ctx context.Context) error
}

// defaultJobTimeout bounds a single run
const defaultJobTimeout = 2 * time.Minute

// Runner schedules jobs on a gocron scheduler
type Runner struct {
	scheduler gocron.Scheduler
	jobs      []Job
	timeout   time.Duration
	mu        sync.Mutex
	running   bool
}

// NewRunner creates a runner for the given jobs. Nothing runs until Start.
func NewRunner(jobs ...Job) (*Runner, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Runner{scheduler: s, jobs: jobs, timeout: defaultJobTimeout}, nil
}

// Start registers every job and starts the scheduler. Each job also runs
// once immediately.
func (r *Runner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return nil
	}

	for _, job := range r.jobs {
		if job.Interval() <= 0 {
			return fmt.Errorf("job %s: interval must be positive", job.Name())
		}
		_, err := r.scheduler.NewJob(
			gocron.DurationJob(job.Interval()),
			gocron.NewTask(r.runJob, job),
			gocron.WithName(job.Name()),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithStartAt(gocron.WithStartImmediately()),
		)
		if err != nil {
			return fmt.Errorf("schedule %s: %w", job.Name(), err)
		}
		slog.Info("job scheduled", "job", job.Name(), "interval", job.Interval())
	}

	r.scheduler.Start()
	r.running = true
	return nil
}

// Stop waits for running jobs to finish and shuts the scheduler down
func (r *Runner) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return nil
	}
	r.running = false

	if err := r.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("shutdown scheduler: %w", err)
	}
	slog.Info("job runner stopped")
	return nil
}

// IsRunning returns whether the scheduler has been started
func (r *Runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *Runner) runJob(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		slog.Error("job failed", "job", job.Name(), "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("job finished", "job", job.Name(), "duration", time.Since(start))
}
