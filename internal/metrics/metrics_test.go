package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGetReturnsSingleton(t *testing.T) {
	m1 := Get()
	m2 := Get()

	if m1 != m2 {
		t.Error("expected Get to return the same instance")
	}
}

func TestHandlerOutput(t *testing.T) {
	m := Get()
	m.RecordRunStarted()
	m.RecordRunCompleted(250 * time.Millisecond)
	m.RecordMetricFetchFailure("SERVICE_LEVEL")
	m.RecordQueueLookupFailure()
	m.RecordZeroTrafficWindow()
	m.RecordNotificationSent()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	m.Handler()(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("expected text/plain content type, got %s", ct)
	}

	body := rec.Body.String()
	wantLines := []string{
		"queuepulse_uptime_seconds",
		"queuepulse_runs_started_total",
		"queuepulse_runs_completed_total",
		"queuepulse_last_run_duration_seconds",
		`queuepulse_metric_fetch_failures_total{metric="SERVICE_LEVEL"} 1`,
		"queuepulse_queue_lookup_failures_total 1",
		"queuepulse_zero_traffic_windows_total 1",
		"queuepulse_notifications_sent_total 1",
	}
	for _, want := range wantLines {
		if !strings.Contains(body, want) {
			t.Errorf("expected metrics output to contain %q, got:\n%s", want, body)
		}
	}
}
