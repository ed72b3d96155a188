// Package scheduler runs background maintenance tasks on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

// TaskFunc is the function signature for scheduled tasks.
type TaskFunc func(ctx context.Context) error

// TaskConfig describes a scheduled task.
type TaskConfig struct {
	Name       string
	Cron       string // cron expression, e.g. "*/15 * * * *"
	Func       TaskFunc
	RunOnStart bool // execute immediately on startup
}

// Scheduler manages background scheduled tasks.
type Scheduler struct {
	gocron  gocron.Scheduler
	logger  zerolog.Logger
	onStart []TaskConfig
}

// New creates a new scheduler.
func New(logger zerolog.Logger) (*Scheduler, error) {
	gs, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Scheduler{
		gocron: gs,
		logger: logger.With().Str("component", "scheduler").Logger(),
	}, nil
}

// RegisterTask registers a new scheduled task.
func (s *Scheduler) RegisterTask(cfg TaskConfig) error {
	_, err := s.gocron.NewJob(
		gocron.CronJob(cfg.Cron, false),
		gocron.NewTask(func() { s.run(cfg) }),
		gocron.WithName(cfg.Name),
	)
	if err != nil {
		return fmt.Errorf("failed to create job for task %q: %w", cfg.Name, err)
	}

	if cfg.RunOnStart {
		s.onStart = append(s.onStart, cfg)
	}

	s.logger.Info().
		Str("name", cfg.Name).
		Str("cron", cfg.Cron).
		Bool("runOnStart", cfg.RunOnStart).
		Msg("registered task")

	return nil
}

// Start starts the scheduler and runs any tasks configured with RunOnStart.
func (s *Scheduler) Start() {
	s.gocron.Start()

	for _, cfg := range s.onStart {
		go s.run(cfg)
	}
}

// Stop stops the scheduler gracefully.
func (s *Scheduler) Stop() error {
	s.logger.Info().Msg("stopping scheduler")
	return s.gocron.Shutdown()
}

// run executes one task and logs its result.
func (s *Scheduler) run(cfg TaskConfig) {
	start := time.Now()

	if err := cfg.Func(context.Background()); err != nil {
		s.logger.Error().
			Err(err).
			Str("name", cfg.Name).
			Dur("duration", time.Since(start)).
			Msg("task failed")
		return
	}

	s.logger.Debug().
		Str("name", cfg.Name).
		Dur("duration", time.Since(start)).
		Msg("task completed")
}
