package report

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/queuepulse/backend/internal/metrics"
	"github.com/queuepulse/backend/internal/notify"
	"github.com/queuepulse/backend/internal/results"
	"github.com/queuepulse/backend/internal/summary"
	"github.com/queuepulse/backend/internal/telemetry"
	"github.com/queuepulse/backend/internal/window"
)

// Result is the outcome of one report run.
type Result struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Runner wires one report run end to end: validate the event, resolve
// the window, collect and reduce metrics, derive the summary and
// deliver the notification.
//
// Failures split into two tiers: per-metric and per-queue-name
// failures are absorbed inside the collector (zero/sentinel values,
// run continues); validation and delivery failures fail the run.
type Runner struct {
	collector       *telemetry.Collector
	notifier        *notify.Notifier
	policy          summary.Policy
	slThresholdSecs float64
	logger          zerolog.Logger

	// Now supplies the wall clock; replaceable in tests.
	Now func() time.Time
}

// NewRunner creates a runner over the given collaborators.
func NewRunner(collector *telemetry.Collector, notifier *notify.Notifier, policy summary.Policy, slThresholdSecs float64, logger zerolog.Logger) *Runner {
	return &Runner{
		collector:       collector,
		notifier:        notifier,
		policy:          policy,
		slThresholdSecs: slThresholdSecs,
		logger:          logger,
		Now:             time.Now,
	}
}

// Run executes one report run for the event. The returned result is
// never accompanied by an error: failures are folded into a 500-style
// result, mirroring the scheduler-facing contract.
func (r *Runner) Run(ctx context.Context, event Event) Result {
	m := metrics.Get()
	m.RecordRunStarted()
	started := time.Now()

	logger := r.logger.With().Str("run_id", uuid.NewString()).Logger()
	logger.Info().
		Str("connect_arn", event.ConnectARN).
		Strs("queues", event.Queues).
		Msg("report run started")

	if err := event.Validate(); err != nil {
		return r.fail(logger, err)
	}
	instanceID, err := event.InstanceID()
	if err != nil {
		return r.fail(logger, err)
	}

	w := window.Resolve(r.Now())
	logger.Info().
		Time("window_start", w.Start).
		Time("window_end", w.End).
		Msg("reporting window resolved")

	store := results.New(event.Queues)
	r.collector.ResolveQueueNames(ctx, instanceID, store)

	outcomes := r.collector.CollectAll(ctx, event.ConnectARN, w, r.slThresholdSecs, store)
	for _, outcome := range outcomes {
		if outcome.Degraded {
			logger.Warn().
				Str("metric", outcome.Metric).
				Err(outcome.Err).
				Msg("metric degraded to zero values")
		}
	}

	sum := summary.Calculate(store.Total(), r.policy, logger)
	if sum.ZeroActivity() {
		m.RecordZeroTrafficWindow()
	}

	if err := r.notifier.Send(ctx, event.Webhook, sum, w); err != nil {
		return r.fail(logger, err)
	}

	m.RecordRunCompleted(time.Since(started))
	logger.Info().Dur("duration", time.Since(started)).Msg("report run completed")
	return Result{
		StatusCode: http.StatusOK,
		Body:       "metrics collected and notification delivered",
	}
}

func (r *Runner) fail(logger zerolog.Logger, err error) Result {
	metrics.Get().RecordRunFailure()
	logger.Error().Err(err).Msg("report run failed")
	return Result{
		StatusCode: http.StatusInternalServerError,
		Body:       "report run failed: " + err.Error(),
	}
}
