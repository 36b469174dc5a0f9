package scheduler

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/queuepulse/backend/internal/report"
)

// fireDelay keeps runs a little past the hour boundary so the
// telemetry source has settled the just-closed window.
const fireDelay = time.Minute

// Scheduler fires one report run shortly after every hour boundary
// using a fixed invocation event. It replaces the external cron the
// report contract was originally driven by.
type Scheduler struct {
	runner  *report.Runner
	event   report.Event
	timeout time.Duration
	logger  zerolog.Logger
}

// New creates a Scheduler for the given runner and event.
func New(runner *report.Runner, event report.Event, timeout time.Duration, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		runner:  runner,
		event:   event,
		timeout: timeout,
		logger:  logger,
	}
}

// Start runs the schedule until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info().Dur("fire_delay", fireDelay).Msg("scheduler started")

	for {
		next := nextFire(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info().Msg("scheduler stopped")
			return

		case <-timer.C:
			runCtx, cancel := context.WithTimeout(ctx, s.timeout)
			result := s.runner.Run(runCtx, s.event)
			cancel()

			if result.StatusCode != http.StatusOK {
				// Not retried here: the next boundary brings the next run.
				s.logger.Error().
					Int("status", result.StatusCode).
					Str("body", result.Body).
					Msg("scheduled run failed")
				continue
			}
			s.logger.Info().Time("next_run", nextFire(time.Now())).Msg("scheduled run completed")
		}
	}
}

// nextFire returns the first instant strictly after now that lies
// fireDelay past an hour boundary.
func nextFire(now time.Time) time.Time {
	fire := now.UTC().Truncate(time.Hour).Add(fireDelay)
	if !fire.After(now) {
		fire = fire.Add(time.Hour)
	}
	return fire
}
