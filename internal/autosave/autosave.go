// Package autosave periodically writes the open lesson to its autosave slot
package autosave

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Saver writes the lesson when it changed since the last save
type Saver interface {
	// Method Autosave writes the lesson to its slot.
	//
	// Returns whether anything was written.
	Autosave(ctx context.Context) (bool, error)
}

// Scheduler runs the autosave job on a fixed interval
type Scheduler struct {
	cron    *cron.Cron
	saver   Saver
	logger  *zap.Logger
	timeout time.Duration
}

// NewScheduler creates a scheduler that calls saver every interval
func NewScheduler(saver Saver, interval time.Duration, logger *zap.Logger) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("invalid autosave interval: %s", interval)
	}

	s := &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		saver:   saver,
		logger:  logger,
		timeout: interval,
	}
	if _, err := s.cron.AddFunc(Spec(interval), s.Run); err != nil {
		return nil, fmt.Errorf("failed to schedule autosave: %w", err)
	}
	return s, nil
}

// Spec returns the cron schedule of an interval
func Spec(interval time.Duration) string {
	return "@every " + interval.String()
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Autosave scheduler started")
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Autosave scheduler stopped")
}

// Run performs one autosave. Failures are logged and never returned.
func (s *Scheduler) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	wrote, err := s.saver.Autosave(ctx)
	if err != nil {
		s.logger.Error("Autosave failed", zap.Error(err))
		return
	}
	if wrote {
		s.logger.Debug("Autosave written")
	}
}
