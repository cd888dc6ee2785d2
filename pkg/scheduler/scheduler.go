package scheduler

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/matside/pkg/utils/logging"
	"github.com/robfig/cron/v3"
)

// Job represents a scheduled job
type Job interface {
	Run(ctx context.Context) error
	Name() string
}

// Scheduler manages background jobs
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	logger *slog.Logger
}

// New creates a scheduler. Jobs run with ctx, so its logger and values apply.
func New(ctx context.Context) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		ctx:    ctx,
		logger: logging.From(ctx).With("component", "scheduler"),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// AddJob registers job on a standard cron spec or a descriptor such as
// "@every 15m" or "@hourly"
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		_ = s.RunNow(job)
	})
	if err != nil {
		return goerr.Wrap(err, "failed to register job",
			goerr.V("schedule", schedule),
			goerr.V("job", job.Name()))
	}

	s.logger.Info("job registered", "schedule", schedule, "job", job.Name())
	return nil
}

// RunNow executes a job immediately, outside its schedule
func (s *Scheduler) RunNow(job Job) error {
	logger := s.logger.With("job", job.Name())
	logger.Debug("running job")

	if err := job.Run(logging.With(s.ctx, logger)); err != nil {
		logger.Error("job failed", "error", err)
		return err
	}

	logger.Debug("job completed")
	return nil
}
