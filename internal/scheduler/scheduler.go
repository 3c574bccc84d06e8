// Package scheduler periodically re-runs the last admitted weather query so
// the host subsystem keeps receiving fresh snapshots without resubmitting.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/halcyonos/weather-provider/internal/weather"
)

// Scheduler drives the periodic refresh job.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	interval  time.Duration
	timeout   time.Duration
	log       *zap.SugaredLogger
}

// New creates a Scheduler. A non-positive interval disables scheduling.
func New(service *weather.Service, interval, timeout time.Duration, log *zap.SugaredLogger) *Scheduler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		interval:  interval,
		timeout:   timeout,
		log:       log,
	}
}

// Start schedules the refresh job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.log.Info("refresh scheduler disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.service.RefreshLastKnown(ctx); err != nil {
			s.log.Warnw("scheduled refresh failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
