package report

import (
	"errors"
	"fmt"
	"strings"
)

// Event is the invocation input for one report run.
type Event struct {
	ConnectARN string   `json:"connect_arn"`
	Queues     []string `json:"queues"`
	Webhook    string   `json:"webhook"`
}

// ErrMissingParameters is returned when a required event field is absent.
var ErrMissingParameters = errors.New("missing required parameters: connect_arn, queues and webhook are required")

// Validate checks that every required field is present.
func (e Event) Validate() error {
	if e.ConnectARN == "" || len(e.Queues) == 0 || e.Webhook == "" {
		return ErrMissingParameters
	}
	return nil
}

// InstanceID extracts the Connect instance ID from the instance ARN,
// e.g. arn:aws:connect:ap-northeast-1:123456789012:instance/<id>.
func (e Event) InstanceID() (string, error) {
	parts := strings.Split(e.ConnectARN, "/")
	if len(parts) < 2 || parts[1] == "" {
		return "", fmt.Errorf("malformed connect_arn %q: no instance ID segment", e.ConnectARN)
	}
	return parts[1], nil
}
