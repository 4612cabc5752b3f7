package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/airscore/airscore/internal/score"
)

// WebhookConfig holds configuration for the run completion webhook.
type WebhookConfig struct {
	// URL is the endpoint run summaries are POSTed to.
	URL string

	// Timeout is the per-request timeout. Default: 10 seconds.
	Timeout time.Duration

	Logger zerolog.Logger
}

// Webhook posts a summary of each completed scoring run to an operator
// endpoint. Delivery is best effort: failures are logged and retried, but
// never fail the run itself.
type Webhook struct {
	url    string
	client *Client
	logger zerolog.Logger
}

// NewWebhook creates a new run completion webhook.
func NewWebhook(cfg WebhookConfig) *Webhook {
	return &Webhook{
		url: cfg.URL,
		client: NewClient(ClientConfig{
			Name:    "run-webhook",
			Timeout: cfg.Timeout,
		}),
		logger: cfg.Logger,
	}
}

// runPayload is the webhook body for a completed run.
type runPayload struct {
	RunID           string    `json:"runId"`
	StartedAt       time.Time `json:"startedAt"`
	DurationMillis  int64     `json:"durationMillis"`
	StationsScored  int       `json:"stationsScored"`
	StationsUnknown int       `json:"stationsUnknown"`
	Clamped         int       `json:"clamped"`
}

// RunCompleted delivers the run summary to the configured endpoint.
func (w *Webhook) RunCompleted(ctx context.Context, run score.RunSummary) error {
	payload, err := json.Marshal(runPayload{
		RunID:           run.RunID,
		StartedAt:       run.StartedAt,
		DurationMillis:  run.Duration.Milliseconds(),
		StationsScored:  run.StationsScored,
		StationsUnknown: run.StationsUnknown,
		Clamped:         run.Clamped,
	})
	if err != nil {
		return fmt.Errorf("marshal run payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("deliver run webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("run webhook rejected: status %d", resp.StatusCode)
	}

	w.logger.Debug().
		Str("run_id", run.RunID).
		Int("status", resp.StatusCode).
		Msg("run webhook delivered")
	return nil
}
