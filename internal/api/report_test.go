package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/connect"
	connecttypes "github.com/aws/aws-sdk-go-v2/service/connect/types"
	"github.com/rs/zerolog"

	"github.com/queuepulse/backend/internal/notify"
	"github.com/queuepulse/backend/internal/report"
	"github.com/queuepulse/backend/internal/summary"
	"github.com/queuepulse/backend/internal/telemetry"
)

type emptyConnect struct{}

func (emptyConnect) DescribeQueue(_ context.Context, params *connect.DescribeQueueInput, _ ...func(*connect.Options)) (*connect.DescribeQueueOutput, error) {
	return &connect.DescribeQueueOutput{
		Queue: &connecttypes.Queue{Name: aws.String(aws.ToString(params.QueueId))},
	}, nil
}

func (emptyConnect) GetMetricDataV2(context.Context, *connect.GetMetricDataV2Input, ...func(*connect.Options)) (*connect.GetMetricDataV2Output, error) {
	return &connect.GetMetricDataV2Output{}, nil
}

func testHandler(t *testing.T) (*Handler, *httptest.Server) {
	t.Helper()
	logger := zerolog.New(&bytes.Buffer{})

	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(webhook.Close)

	collector := telemetry.NewCollector(emptyConnect{}, logger)
	notifier := notify.NewNotifier(9, logger)
	runner := report.NewRunner(collector, notifier, summary.Policy{}, telemetry.DefaultServiceLevelThreshold, logger)

	return NewHandler(runner, 30*time.Second, logger), webhook
}

func TestHandleReport(t *testing.T) {
	handler, webhook := testHandler(t)

	event := report.Event{
		ConnectARN: "arn:aws:connect:ap-northeast-1:123456789012:instance/abc",
		Queues:     []string{"q1"},
		Webhook:    webhook.URL,
	}
	body, _ := json.Marshal(event)

	req := httptest.NewRequest(http.MethodPost, "/internal/report", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.HandleReport(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result report.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if result.StatusCode != http.StatusOK {
		t.Errorf("expected result statusCode 200, got %d", result.StatusCode)
	}
	if !strings.Contains(result.Body, "notification delivered") {
		t.Errorf("unexpected result body: %q", result.Body)
	}
}

func TestHandleReportInvalidBody(t *testing.T) {
	handler, _ := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/internal/report", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	handler.HandleReport(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleReportValidationFailure(t *testing.T) {
	handler, _ := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/internal/report", strings.NewReader(`{"queues":["q1"]}`))
	rec := httptest.NewRecorder()

	handler.HandleReport(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500 for invalid event, got %d", rec.Code)
	}
}

func TestGetStats(t *testing.T) {
	handler, webhook := testHandler(t)

	// Trigger one run first
	event := report.Event{
		ConnectARN: "arn:aws:connect:ap-northeast-1:123456789012:instance/abc",
		Queues:     []string{"q1"},
		Webhook:    webhook.URL,
	}
	body, _ := json.Marshal(event)
	handler.HandleReport(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/internal/report", bytes.NewReader(body)))

	req := httptest.NewRequest(http.MethodGet, "/internal/report/stats", nil)
	rec := httptest.NewRecorder()

	handler.GetStats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var stats map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to parse stats: %v", err)
	}
	if stats["runs_triggered"] != float64(1) {
		t.Errorf("expected 1 run triggered, got %v", stats["runs_triggered"])
	}
}
