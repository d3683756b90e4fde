// Package telemetry wires OpenTelemetry tracing and metrics exported over OTLP/HTTP.
// Endpoints come from the standard OTEL_EXPORTER_OTLP_* environment variables.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/maxviazov/reminder-admin/internal/config"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Telemetry holds the active meter provider and the shutdown hooks of whatever
// was started. The zero value is a disabled, no-op setup.
type Telemetry struct {
	Enabled       bool
	MeterProvider metric.MeterProvider
	shutdown      []func(context.Context) error
}

// Setup installs global trace and meter providers when cfg.Enabled; otherwise
// it leaves the global no-op providers in place.
func Setup(ctx context.Context, cfg config.TelemetryConfig, env, version string, logger zerolog.Logger) (*Telemetry, error) {
	t := &Telemetry{MeterProvider: otel.GetMeterProvider()}
	if !cfg.Enabled {
		logger.Debug().Msg("telemetry disabled")
		return t, nil
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", version),
		attribute.String("deployment.environment", env),
	)

	traceExp, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("otlp trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	t.shutdown = append(t.shutdown, tp.Shutdown)

	metricExp, err := otlpmetrichttp.New(ctx)
	if err != nil {
		_ = t.Shutdown(ctx)
		return nil, fmt.Errorf("otlp metric exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp, sdkmetric.WithInterval(cfg.MetricsInterval))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	t.shutdown = append(t.shutdown, mp.Shutdown)
	t.MeterProvider = mp

	if err := runtime.Start(runtime.WithMeterProvider(mp)); err != nil {
		logger.Warn().Err(err).Msg("runtime metrics unavailable")
	}

	t.Enabled = true
	logger.Info().
		Str("service", cfg.ServiceName).
		Dur("metrics_interval", cfg.MetricsInterval).
		Msg("telemetry enabled")
	return t, nil
}

// Shutdown flushes and stops providers in reverse start order.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(t.shutdown) - 1; i >= 0; i-- {
		if err := t.shutdown[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	t.shutdown = nil
	return errors.Join(errs...)
}

// Close runs Shutdown on a fresh context bounded by timeout, so a final
// flush still happens after the serving context was cancelled by a signal.
func (t *Telemetry) Close(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return t.Shutdown(ctx)
}
