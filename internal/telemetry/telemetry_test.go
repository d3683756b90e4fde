package telemetry_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/reminder-admin/internal/config"
	"github.com/maxviazov/reminder-admin/internal/telemetry"
)

func TestSetup_Disabled(t *testing.T) {
	tel, err := telemetry.Setup(context.Background(), config.TelemetryConfig{Enabled: false}, "test", "0.0.1", zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, tel.Enabled)
	assert.NotNil(t, tel.MeterProvider)
	assert.NoError(t, tel.Shutdown(context.Background()))
	assert.NoError(t, tel.Close(time.Second))
}

// collector counts OTLP metric exports.
func collector(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var metrics atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/metrics" {
			metrics.Add(1)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, &metrics
}

func TestClose_FlushesAfterServeContextCancelled(t *testing.T) {
	srv, metrics := collector(t)
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", srv.URL)
	cfg := config.TelemetryConfig{Enabled: true, ServiceName: "reminder-admin-test", MetricsInterval: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	tel, err := telemetry.Setup(ctx, cfg, "test", "0.0.1", zerolog.Nop())
	require.NoError(t, err)
	require.True(t, tel.Enabled)

	counter, err := tel.MeterProvider.Meter("test").Int64Counter("reminders_checked")
	require.NoError(t, err)
	counter.Add(ctx, 3)

	// a signal cancels the serving context before deferred cleanup runs
	cancel()

	require.NoError(t, tel.Close(5*time.Second))
	assert.GreaterOrEqual(t, metrics.Load(), int32(1), "final metrics were not exported")
	assert.NoError(t, tel.Shutdown(context.Background()), "second shutdown is a no-op")
}
