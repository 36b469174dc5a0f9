package telemetry

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/connect"
	"github.com/rs/zerolog"

	"github.com/queuepulse/backend/internal/metrics"
	"github.com/queuepulse/backend/internal/results"
	"github.com/queuepulse/backend/internal/window"
)

// QueueNameError is the sentinel display name recorded when a queue
// metadata lookup fails.
const QueueNameError = "Error"

// Outcome is the tagged result of collecting one metric. A degraded
// outcome means the metric was zero-filled after a failed API call and
// the run continued.
type Outcome struct {
	Metric   string
	Degraded bool
	Err      error
}

// Collector fetches queue names and metric data for one window against
// the Connect API, reducing responses into a results store.
type Collector struct {
	api    ConnectAPI
	logger zerolog.Logger
}

// NewCollector creates a collector over the given Connect API slice.
func NewCollector(api ConnectAPI, logger zerolog.Logger) *Collector {
	return &Collector{
		api:    api,
		logger: logger,
	}
}

// ResolveQueueNames records a QUEUE_NAME entry for every queue in the
// store. A failed lookup yields the sentinel name for that queue only;
// it never affects metric collection.
func (c *Collector) ResolveQueueNames(ctx context.Context, instanceID string, store *results.Store) {
	m := metrics.Get()

	for _, queue := range store.Queues() {
		resp, err := c.api.DescribeQueue(ctx, &connect.DescribeQueueInput{
			InstanceId: aws.String(instanceID),
			QueueId:    aws.String(queue),
		})
		if err != nil {
			c.logger.Error().Err(err).Str("queue", queue).Msg("failed to describe queue")
			m.RecordQueueLookupFailure()
			store.Append(queue, QueueNameRecord, QueueNameError)
			continue
		}

		name := "Unknown"
		if resp.Queue != nil && resp.Queue.Name != nil {
			name = *resp.Queue.Name
		}
		store.Append(queue, QueueNameRecord, name)
	}
}

// CollectAll collects every metric in the fixed order, reducing each
// response into the store. A failed call zero-fills that metric for
// every key and the run continues; a single metric outage must not
// blank the whole notification. The returned outcomes tag which
// metrics degraded.
func (c *Collector) CollectAll(ctx context.Context, resourceArn string, w window.Window, slThresholdSecs float64, store *results.Store) []Outcome {
	m := metrics.Get()
	outcomes := make([]Outcome, 0, 4)

	for _, metric := range CollectionOrder(slThresholdSecs) {
		c.logger.Info().Str("metric", metric.Name).Msg("collecting metric")

		query := BuildQuery(metric, resourceArn, store.Queues(), w)
		resp, err := c.api.GetMetricDataV2(ctx, query)
		if err != nil {
			c.logger.Error().Err(err).Str("metric", metric.Name).Msg("metric fetch failed, zero-filling")
			m.RecordMetricFetchFailure(metric.Name)
			ZeroFill(store, metric.Name)
			outcomes = append(outcomes, Outcome{Metric: metric.Name, Degraded: true, Err: err})
			continue
		}

		if len(resp.MetricResults) == 0 {
			c.logger.Info().Str("metric", metric.Name).Msg("empty metric response, likely zero traffic")
		}
		Reduce(store, metric, resp.MetricResults)
		outcomes = append(outcomes, Outcome{Metric: metric.Name})
	}

	return outcomes
}
