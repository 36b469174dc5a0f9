package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/queuepulse/backend/internal/metrics"
	"github.com/queuepulse/backend/internal/summary"
	"github.com/queuepulse/backend/internal/window"
)

// Message is the Slack-compatible webhook payload.
type Message struct {
	Text string `json:"text"`
}

// Notifier delivers formatted window summaries to a chat webhook.
// Delivery is not retried; a failed send fails the run and the
// scheduler is expected to re-invoke it.
type Notifier struct {
	client             *http.Client
	displayOffsetHours int
	logger             zerolog.Logger
}

// NewNotifier creates a notifier rendering times at the given UTC
// offset in hours.
func NewNotifier(displayOffsetHours int, logger zerolog.Logger) *Notifier {
	return &Notifier{
		client:             &http.Client{Timeout: 10 * time.Second},
		displayOffsetHours: displayOffsetHours,
		logger:             logger,
	}
}

// Send formats the summary and POSTs it to the webhook URL.
func (n *Notifier) Send(ctx context.Context, webhookURL string, s summary.Summary, w window.Window) error {
	m := metrics.Get()

	text := Format(s, w, n.displayOffsetHours)
	n.logger.Info().Str("message", text).Msg("sending notification")

	body, err := json.Marshal(Message{Text: text})
	if err != nil {
		m.RecordNotificationFailure()
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		m.RecordNotificationFailure()
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		m.RecordNotificationFailure()
		return fmt.Errorf("failed to deliver notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		m.RecordNotificationFailure()
		return fmt.Errorf("notification webhook returned status %d", resp.StatusCode)
	}

	m.RecordNotificationSent()
	n.logger.Info().Int("status", resp.StatusCode).Msg("notification delivered")
	return nil
}
