package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airscore/airscore/internal/notify"
	"github.com/airscore/airscore/internal/score"
)

func testRun() score.RunSummary {
	return score.RunSummary{
		RunID:           "run_webhook_test",
		StartedAt:       time.Date(2026, 8, 1, 6, 0, 0, 0, time.UTC),
		Duration:        1500 * time.Millisecond,
		StationsScored:  120,
		StationsUnknown: 3,
		Clamped:         7,
	}
}

func TestWebhook_DeliversRunSummary(t *testing.T) {
	var body map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	wh := notify.NewWebhook(notify.WebhookConfig{
		URL:    server.URL,
		Logger: zerolog.Nop(),
	})

	err := wh.RunCompleted(context.Background(), testRun())
	require.NoError(t, err)

	assert.Equal(t, "run_webhook_test", body["runId"])
	assert.Equal(t, float64(1500), body["durationMillis"])
	assert.Equal(t, float64(120), body["stationsScored"])
	assert.Equal(t, float64(3), body["stationsUnknown"])
	assert.Equal(t, float64(7), body["clamped"])
}

func TestWebhook_RetriesTransientFailure(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	wh := notify.NewWebhook(notify.WebhookConfig{
		URL:    server.URL,
		Logger: zerolog.Nop(),
	})

	err := wh.RunCompleted(context.Background(), testRun())
	require.NoError(t, err)
	assert.Equal(t, int32(3), attempts.Load(), "should have retried until success")
}

func TestWebhook_RejectedDelivery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	wh := notify.NewWebhook(notify.WebhookConfig{
		URL:    server.URL,
		Logger: zerolog.Nop(),
	})

	err := wh.RunCompleted(context.Background(), testRun())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestWebhook_EndpointUnreachable(t *testing.T) {
	wh := notify.NewWebhook(notify.WebhookConfig{
		URL:     "http://127.0.0.1:1/hooks",
		Timeout: 500 * time.Millisecond,
		Logger:  zerolog.Nop(),
	})

	err := wh.RunCompleted(context.Background(), testRun())
	require.Error(t, err)
}
