package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Metrics holds all application metrics
type Metrics struct {
	mu sync.RWMutex

	// Report run metrics
	RunsStartedTotal   int64
	RunsCompletedTotal int64
	RunFailuresTotal   int64
	lastRunDuration    time.Duration

	// Collection metrics
	MetricFetchFailures map[string]int64 // metric name -> count
	QueueLookupFailures int64
	ZeroTrafficWindows  int64

	// Notification metrics
	NotificationsSentTotal    int64
	NotificationFailuresTotal int64

	// Timing
	startTime time.Time
}

// Global metrics instance
var instance *Metrics
var once sync.Once

// Get returns the singleton metrics instance
func Get() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			MetricFetchFailures: make(map[string]int64),
			startTime:           time.Now(),
		}
	})
	return instance
}

// RecordRunStarted increments the started run counter
func (m *Metrics) RecordRunStarted() {
	m.mu.Lock()
	m.RunsStartedTotal++
	m.mu.Unlock()
}

// RecordRunCompleted records a successful run and its duration
func (m *Metrics) RecordRunCompleted(duration time.Duration) {
	m.mu.Lock()
	m.RunsCompletedTotal++
	m.lastRunDuration = duration
	m.mu.Unlock()
}

// RecordRunFailure increments the failed run counter
func (m *Metrics) RecordRunFailure() {
	m.mu.Lock()
	m.RunFailuresTotal++
	m.mu.Unlock()
}

// RecordMetricFetchFailure increments the fetch failure counter for a metric
func (m *Metrics) RecordMetricFetchFailure(metricName string) {
	m.mu.Lock()
	m.MetricFetchFailures[metricName]++
	m.mu.Unlock()
}

// RecordQueueLookupFailure increments the queue lookup failure counter
func (m *Metrics) RecordQueueLookupFailure() {
	m.mu.Lock()
	m.QueueLookupFailures++
	m.mu.Unlock()
}

// RecordZeroTrafficWindow increments the zero-traffic window counter
func (m *Metrics) RecordZeroTrafficWindow() {
	m.mu.Lock()
	m.ZeroTrafficWindows++
	m.mu.Unlock()
}

// RecordNotificationSent increments the sent notification counter
func (m *Metrics) RecordNotificationSent() {
	m.mu.Lock()
	m.NotificationsSentTotal++
	m.mu.Unlock()
}

// RecordNotificationFailure increments the failed notification counter
func (m *Metrics) RecordNotificationFailure() {
	m.mu.Lock()
	m.NotificationFailuresTotal++
	m.mu.Unlock()
}

// Handler returns an HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.mu.RLock()
		defer m.mu.RUnlock()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		// Helper to write metric
		write := func(name string, value interface{}, labels ...string) {
			labelStr := ""
			if len(labels) > 0 {
				labelStr = "{"
				for i := 0; i < len(labels); i += 2 {
					if i > 0 {
						labelStr += ","
					}
					labelStr += labels[i] + "=\"" + labels[i+1] + "\""
				}
				labelStr += "}"
			}

			switch v := value.(type) {
			case int:
				w.Write([]byte(name + labelStr + " " + strconv.Itoa(v) + "\n"))
			case int64:
				w.Write([]byte(name + labelStr + " " + strconv.FormatInt(v, 10) + "\n"))
			case float64:
				w.Write([]byte(name + labelStr + " " + strconv.FormatFloat(v, 'f', 6, 64) + "\n"))
			}
		}

		// System metrics
		write("queuepulse_uptime_seconds", time.Since(m.startTime).Seconds())

		// Run metrics
		write("queuepulse_runs_started_total", m.RunsStartedTotal)
		write("queuepulse_runs_completed_total", m.RunsCompletedTotal)
		write("queuepulse_run_failures_total", m.RunFailuresTotal)
		write("queuepulse_last_run_duration_seconds", m.lastRunDuration.Seconds())

		// Collection metrics
		for metric, count := range m.MetricFetchFailures {
			write("queuepulse_metric_fetch_failures_total", count, "metric", metric)
		}
		write("queuepulse_queue_lookup_failures_total", m.QueueLookupFailures)
		write("queuepulse_zero_traffic_windows_total", m.ZeroTrafficWindows)

		// Notification metrics
		write("queuepulse_notifications_sent_total", m.NotificationsSentTotal)
		write("queuepulse_notification_failures_total", m.NotificationFailuresTotal)
	}
}
