package telemetry

// Metric names as accepted by the Connect GetMetricDataV2 API.
const (
	MetricContactsCreated    = "CONTACTS_CREATED"
	MetricContactsHandled    = "CONTACTS_HANDLED"
	MetricAvgQueueAnswerTime = "AVG_QUEUE_ANSWER_TIME"
	MetricServiceLevel       = "SERVICE_LEVEL"
)

// QueueNameRecord is the record name used for resolved queue display names.
const QueueNameRecord = "QUEUE_NAME"

// DefaultServiceLevelThreshold is the answer-time threshold in seconds
// a contact must beat to count towards the service level.
const DefaultServiceLevelThreshold = 20.0

// ReductionKind selects how per-queue observations fold into the total.
type ReductionKind int

const (
	// ReduceSum totals raw observations (count-like metrics).
	ReduceSum ReductionKind = iota
	// ReduceAverage takes the unweighted mean of all observations
	// across queues (rate/time-like metrics). Deliberately not
	// traffic-weighted; see calculator docs before changing.
	ReduceAverage
)

// Metric describes one collectable metric: its API name, how its
// results reduce into a total, and which request decoration it needs.
// InboundOnly and Threshold are mutually exclusive.
type Metric struct {
	Name string
	Kind ReductionKind

	// InboundOnly restricts the metric to contacts initiated inbound,
	// excluding outbound and transfer-initiated contacts.
	InboundOnly bool

	// ThresholdSecs, when > 0, attaches an answer-time threshold with
	// an LTE comparison to the request.
	ThresholdSecs float64
}

// CollectionOrder is the fixed order metrics are collected in. Each
// metric writes an independent record, so the order only shapes log
// and notification readability.
func CollectionOrder(slThresholdSecs float64) []Metric {
	return []Metric{
		{Name: MetricContactsCreated, Kind: ReduceSum, InboundOnly: true},
		{Name: MetricContactsHandled, Kind: ReduceSum, InboundOnly: true},
		{Name: MetricAvgQueueAnswerTime, Kind: ReduceAverage},
		{Name: MetricServiceLevel, Kind: ReduceAverage, ThresholdSecs: slThresholdSecs},
	}
}
