package summary

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/queuepulse/backend/internal/results"
	"github.com/queuepulse/backend/internal/telemetry"
)

// Summary is the derived operational snapshot for one window. Immutable
// once computed; every field defaults to 0 when a metric was never
// collected.
type Summary struct {
	AnswerRate         float64 `json:"answer_rate"`
	ServiceLevel       float64 `json:"service_level"`
	ServiceLevelCount  int     `json:"service_level_count"`
	AvgQueueAnswerTime float64 `json:"avg_queue_answer_time"`
	ContactsCreated    float64 `json:"contacts_created"`
	ContactsHandled    float64 `json:"contacts_handled"`
}

// ZeroActivity reports whether the window saw no measurable inbound
// activity. Counts alone are not consulted; an all-zero rate/time
// triple is the agreed signal.
func (s Summary) ZeroActivity() bool {
	return s.AnswerRate == 0 && s.ServiceLevel == 0 && s.AvgQueueAnswerTime == 0
}

// Policy holds the business-rule choices the calculation depends on.
type Policy struct {
	// ZeroTrafficAnswerRate is the answer rate reported for a window
	// with no created contacts. 0 by default; some operations prefer
	// 100. Confirm with stakeholders before changing.
	ZeroTrafficAnswerRate float64
}

// Calculate derives the summary from the total record sequence. The
// scan tolerates unknown and duplicate names (last occurrence wins)
// and never fails on missing metrics.
func Calculate(total []results.Record, policy Policy, logger zerolog.Logger) Summary {
	var (
		contactsCreated    float64
		contactsHandled    float64
		avgQueueAnswerTime float64
		serviceLevel       float64
		serviceLevelSeen   bool
	)

	for _, record := range total {
		value, ok := numeric(record.Value)
		if !ok {
			continue
		}

		switch record.Name {
		case telemetry.MetricContactsCreated:
			contactsCreated = value
		case telemetry.MetricContactsHandled:
			contactsHandled = value
		case telemetry.MetricAvgQueueAnswerTime:
			avgQueueAnswerTime = value
		case telemetry.MetricServiceLevel:
			serviceLevel = value
			serviceLevelSeen = true
		}
	}

	answerRate := policy.ZeroTrafficAnswerRate
	if contactsCreated > 0 {
		answerRate = round2(contactsHandled / contactsCreated * 100)
	} else {
		logger.Info().Float64("answer_rate", answerRate).Msg("no contacts created, answer rate set by zero-traffic policy")
	}

	serviceLevelCount := 0
	if serviceLevelSeen {
		serviceLevelCount = int(math.Round(contactsCreated * serviceLevel / 100))
	}

	logger.Info().
		Float64("contacts_created", contactsCreated).
		Float64("contacts_handled", contactsHandled).
		Float64("answer_rate", answerRate).
		Float64("service_level", serviceLevel).
		Msg("summary computed")

	return Summary{
		AnswerRate:         answerRate,
		ServiceLevel:       round2(serviceLevel),
		ServiceLevelCount:  serviceLevelCount,
		AvgQueueAnswerTime: round2(avgQueueAnswerTime),
		ContactsCreated:    contactsCreated,
		ContactsHandled:    contactsHandled,
	}
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
