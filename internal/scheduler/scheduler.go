package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Reloader is the part of weather.Service the scheduler drives.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Scheduler periodically rebuilds the reading store so newly added monthly
// files are picked up without a restart.
type Scheduler struct {
	scheduler *gocron.Scheduler
	reloader  Reloader
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
}

// New creates a new Scheduler.
func New(interval time.Duration, reloader Reloader, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		reloader:  reloader,
		interval:  interval,
		timeout:   2 * time.Minute,
		logger:    logger.With("component", "scheduler"),
	}
}

// Start schedules the reload job and starts the underlying scheduler. The
// first run happens one interval from now; callers load the initial store
// themselves.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Info("reload interval not set; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().SingletonMode().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("reload job scheduled", "interval", s.interval)
	return nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.logger.Debug("running reload job")
	if err := s.reloader.Reload(ctx); err != nil {
		s.logger.Error("reload job failed", "error", err)
		return
	}
	s.logger.Debug("completed reload job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
