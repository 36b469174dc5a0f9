package telemetry

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/connect"
	connecttypes "github.com/aws/aws-sdk-go-v2/service/connect/types"

	"github.com/queuepulse/backend/internal/window"
)

const queueGrouping = "QUEUE"

// BuildQuery maps a metric descriptor onto a GetMetricDataV2 request
// for the given instance ARN, queue set and window. Pure; the same
// inputs always produce the same request.
func BuildQuery(m Metric, resourceArn string, queues []string, w window.Window) *connect.GetMetricDataV2Input {
	metric := connecttypes.MetricV2{
		Name: aws.String(m.Name),
	}

	if m.ThresholdSecs > 0 {
		metric.Threshold = []connecttypes.ThresholdV2{
			{
				Comparison:     aws.String("LTE"),
				ThresholdValue: aws.Float64(m.ThresholdSecs),
			},
		}
	}

	if m.InboundOnly {
		metric.MetricFilters = []connecttypes.MetricFilterV2{
			{
				MetricFilterKey:    aws.String("INITIATION_METHOD"),
				MetricFilterValues: []string{"INBOUND"},
				Negate:             false,
			},
		}
	}

	return &connect.GetMetricDataV2Input{
		ResourceArn: aws.String(resourceArn),
		StartTime:   aws.Time(w.Start),
		EndTime:     aws.Time(w.End),
		Interval: &connecttypes.IntervalDetails{
			IntervalPeriod: connecttypes.IntervalPeriodTotal,
		},
		Filters: []connecttypes.FilterV2{
			{
				FilterKey:    aws.String(queueGrouping),
				FilterValues: queues,
			},
		},
		Groupings: []string{queueGrouping},
		Metrics:   []connecttypes.MetricV2{metric},
	}
}
