package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron *cron.Cron
	jobs *Jobs
	log  *slog.Logger
}

func NewScheduler(jobs *Jobs, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(log.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)))

	return &Scheduler{cron: c, jobs: jobs, log: log}
}

// Start registers the jobs and starts the scheduler. A malformed spec is an error.
func (s *Scheduler) Start(purgeSpec string) error {
	if _, err := s.cron.AddFunc(purgeSpec, s.jobs.PurgeOTPSessions); err != nil {
		return fmt.Errorf("schedule otp purge %q: %w", purgeSpec, err)
	}
	s.log.Info("scheduled otp purge job", slog.String("schedule", purgeSpec))

	s.cron.Start()
	return nil
}

// Stop stops the scheduler; the returned context is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
