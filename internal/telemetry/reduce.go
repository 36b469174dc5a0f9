package telemetry

import (
	"math"

	"github.com/aws/aws-sdk-go-v2/aws"
	connecttypes "github.com/aws/aws-sdk-go-v2/service/connect/types"

	"github.com/queuepulse/backend/internal/results"
)

// Reduce folds one metric's grouped response into the store: one
// record per queue, plus one total record.
//
// An empty response is the zero-traffic path, not an error: every key
// gets an explicit 0 so downstream consumers never see an absent
// metric. Count-like metrics total to the raw sum of all observations;
// rate/time-like metrics total to the unweighted mean of all
// observations across queues, rounded to 2 decimal places. The mean is
// intentionally not weighted by per-queue traffic.
func Reduce(store *results.Store, m Metric, groups []connecttypes.MetricResultV2) {
	if len(groups) == 0 {
		ZeroFill(store, m.Name)
		return
	}

	perQueue := make(map[string]float64, len(groups))
	var totalValue float64
	var totalCount int

	for _, group := range groups {
		queue := group.Dimensions[queueGrouping]
		for _, collection := range group.Collections {
			value := aws.ToFloat64(collection.Value)
			perQueue[queue] += value
			totalValue += value
			totalCount++
		}
	}

	// Queues absent from the response had no matching contacts.
	for _, queue := range store.Queues() {
		store.Append(queue, m.Name, perQueue[queue])
	}

	total := totalValue
	if m.Kind == ReduceAverage {
		if totalCount > 0 {
			total = round2(totalValue / float64(totalCount))
		} else {
			total = 0
		}
	}
	store.AppendTotal(m.Name, total)
}

// ZeroFill records an explicit 0 for the metric on every queue and the
// total. Used for both zero-traffic responses and failed collections.
func ZeroFill(store *results.Store, metricName string) {
	for _, queue := range store.Queues() {
		store.Append(queue, metricName, float64(0))
	}
	store.AppendTotal(metricName, float64(0))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
