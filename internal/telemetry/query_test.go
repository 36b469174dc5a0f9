package telemetry

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	connecttypes "github.com/aws/aws-sdk-go-v2/service/connect/types"

	"github.com/queuepulse/backend/internal/window"
)

func testWindow() window.Window {
	return window.Window{
		Start: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestBuildQueryBase(t *testing.T) {
	arn := "arn:aws:connect:ap-northeast-1:123456789012:instance/abc"
	queues := []string{"q1", "q2"}
	w := testWindow()

	m := Metric{Name: MetricAvgQueueAnswerTime, Kind: ReduceAverage}
	query := BuildQuery(m, arn, queues, w)

	if aws.ToString(query.ResourceArn) != arn {
		t.Errorf("expected resource ARN %s, got %s", arn, aws.ToString(query.ResourceArn))
	}
	if !aws.ToTime(query.StartTime).Equal(w.Start) || !aws.ToTime(query.EndTime).Equal(w.End) {
		t.Errorf("expected window %v-%v, got %v-%v", w.Start, w.End, query.StartTime, query.EndTime)
	}
	if query.Interval == nil || query.Interval.IntervalPeriod != connecttypes.IntervalPeriodTotal {
		t.Error("expected TOTAL interval period")
	}

	if len(query.Filters) != 1 {
		t.Fatalf("expected 1 filter, got %d", len(query.Filters))
	}
	filter := query.Filters[0]
	if aws.ToString(filter.FilterKey) != "QUEUE" {
		t.Errorf("expected QUEUE filter key, got %s", aws.ToString(filter.FilterKey))
	}
	if len(filter.FilterValues) != 2 || filter.FilterValues[0] != "q1" || filter.FilterValues[1] != "q2" {
		t.Errorf("expected filter values [q1 q2], got %v", filter.FilterValues)
	}

	if len(query.Groupings) != 1 || query.Groupings[0] != "QUEUE" {
		t.Errorf("expected QUEUE grouping, got %v", query.Groupings)
	}

	if len(query.Metrics) != 1 {
		t.Fatalf("expected 1 metric, got %d", len(query.Metrics))
	}
	if aws.ToString(query.Metrics[0].Name) != MetricAvgQueueAnswerTime {
		t.Errorf("expected metric name %s, got %s", MetricAvgQueueAnswerTime, aws.ToString(query.Metrics[0].Name))
	}
	if query.Metrics[0].Threshold != nil || query.Metrics[0].MetricFilters != nil {
		t.Error("expected no threshold or metric filters for plain metric")
	}
}

func TestBuildQueryDecoration(t *testing.T) {
	tests := []struct {
		name          string
		metric        Metric
		wantThreshold bool
		wantInbound   bool
	}{
		{
			name:        "contacts created gets inbound filter",
			metric:      Metric{Name: MetricContactsCreated, Kind: ReduceSum, InboundOnly: true},
			wantInbound: true,
		},
		{
			name:        "contacts handled gets inbound filter",
			metric:      Metric{Name: MetricContactsHandled, Kind: ReduceSum, InboundOnly: true},
			wantInbound: true,
		},
		{
			name:          "service level gets threshold",
			metric:        Metric{Name: MetricServiceLevel, Kind: ReduceAverage, ThresholdSecs: 20},
			wantThreshold: true,
		},
		{
			name:   "avg queue answer time gets neither",
			metric: Metric{Name: MetricAvgQueueAnswerTime, Kind: ReduceAverage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := BuildQuery(tt.metric, "arn", []string{"q1"}, testWindow())
			metric := query.Metrics[0]

			hasThreshold := len(metric.Threshold) > 0
			hasInbound := len(metric.MetricFilters) > 0

			if hasThreshold != tt.wantThreshold {
				t.Errorf("threshold present=%v, want %v", hasThreshold, tt.wantThreshold)
			}
			if hasInbound != tt.wantInbound {
				t.Errorf("inbound filter present=%v, want %v", hasInbound, tt.wantInbound)
			}

			// Never both on one metric.
			if hasThreshold && hasInbound {
				t.Error("threshold and inbound filter must be mutually exclusive")
			}

			if tt.wantThreshold {
				th := metric.Threshold[0]
				if aws.ToString(th.Comparison) != "LTE" {
					t.Errorf("expected LTE comparison, got %s", aws.ToString(th.Comparison))
				}
				if aws.ToFloat64(th.ThresholdValue) != 20 {
					t.Errorf("expected threshold 20, got %v", aws.ToFloat64(th.ThresholdValue))
				}
			}

			if tt.wantInbound {
				mf := metric.MetricFilters[0]
				if aws.ToString(mf.MetricFilterKey) != "INITIATION_METHOD" {
					t.Errorf("expected INITIATION_METHOD filter key, got %s", aws.ToString(mf.MetricFilterKey))
				}
				if len(mf.MetricFilterValues) != 1 || mf.MetricFilterValues[0] != "INBOUND" {
					t.Errorf("expected [INBOUND] filter values, got %v", mf.MetricFilterValues)
				}
				if mf.Negate {
					t.Error("inbound filter must not be negated")
				}
			}
		})
	}
}

func TestCollectionOrder(t *testing.T) {
	order := CollectionOrder(20)

	want := []string{
		MetricContactsCreated,
		MetricContactsHandled,
		MetricAvgQueueAnswerTime,
		MetricServiceLevel,
	}

	if len(order) != len(want) {
		t.Fatalf("expected %d metrics, got %d", len(want), len(order))
	}
	for i, name := range want {
		if order[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, order[i].Name)
		}
	}

	for _, m := range order {
		if m.InboundOnly && m.ThresholdSecs > 0 {
			t.Errorf("metric %s carries both inbound filter and threshold", m.Name)
		}
	}
}
