package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airscore/airscore/internal/telemetry"
)

func TestInit_Disabled(t *testing.T) {
	ctx := context.Background()

	provider, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "airscore-test",
		ServiceVersion: "1.0.0",
		Environment:    "test",
		OTLPEndpoint:   "localhost:4317",
		Enabled:        false,
	})

	require.NoError(t, err)
	require.NotNil(t, provider)

	// Instrumentation still works against the noop globals.
	assert.NotNil(t, provider.Tracer)
	assert.NotNil(t, provider.Meter)

	assert.NoError(t, provider.Shutdown(ctx))
}

func TestInit_Disabled_DefaultsServiceName(t *testing.T) {
	provider, err := telemetry.Init(context.Background(), telemetry.Config{})

	require.NoError(t, err)
	assert.NotNil(t, provider.Tracer)
	assert.NotNil(t, provider.Meter)
}

func TestProvider_Shutdown_Empty(t *testing.T) {
	provider := &telemetry.Provider{}
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestTracer_ReturnsGlobalTracer(t *testing.T) {
	assert.NotNil(t, telemetry.Tracer("airscore-test"))
}

func TestMeter_ReturnsGlobalMeter(t *testing.T) {
	assert.NotNil(t, telemetry.Meter("airscore-test"))
}
