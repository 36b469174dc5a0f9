package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/queuepulse/backend/internal/report"
)

// Handler serves on-demand report invocations
type Handler struct {
	runner        *report.Runner
	timeout       time.Duration
	logger        zerolog.Logger
	runsTriggered int64
	lastTriggered time.Time
	mu            sync.RWMutex
}

// NewHandler creates a new report handler
func NewHandler(runner *report.Runner, timeout time.Duration, logger zerolog.Logger) *Handler {
	return &Handler{
		runner:  runner,
		timeout: timeout,
		logger:  logger,
	}
}

// HandleReport decodes an invocation event and runs one report synchronously
func (h *Handler) HandleReport(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var event report.Event
	if err := json.NewDecoder(req.Body).Decode(&event); err != nil {
		h.logger.Error().Err(err).Msg("failed to decode invocation event")
		http.Error(w, "invalid event", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), h.timeout)
	defer cancel()

	result := h.runner.Run(ctx, event)

	atomic.AddInt64(&h.runsTriggered, 1)
	h.mu.Lock()
	h.lastTriggered = time.Now()
	h.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(result.StatusCode)
	json.NewEncoder(w).Encode(result)
}

// GetStats returns handler statistics
func (h *Handler) GetStats(w http.ResponseWriter, req *http.Request) {
	h.mu.RLock()
	lastTriggered := h.lastTriggered
	h.mu.RUnlock()

	stats := map[string]interface{}{
		"runs_triggered": atomic.LoadInt64(&h.runsTriggered),
		"last_triggered": lastTriggered,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
