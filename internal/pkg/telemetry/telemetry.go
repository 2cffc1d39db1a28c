// Package telemetry wires OpenTelemetry metrics and traces for the intake
// service.
//
// Telemetry is off by default and no-op providers are installed. When
// enabled, metric readers are attached for stdout and/or an OTLP/HTTP
// endpoint, and spans are written to stdout when Stdout is set.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const instrumentationScope = "zenvor/intake"

type Settings struct {
	Enabled      bool
	Stdout       bool
	OTLPEndpoint string
	ServiceName  string
}

// Init installs the global meter and tracer providers and returns a func
// that flushes and shuts both down.
func Init(ctx context.Context, s Settings) (func(context.Context) error, error) {
	if !s.Enabled {
		otel.SetMeterProvider(metricnoop.NewMeterProvider())
		otel.SetTracerProvider(tracenoop.NewTracerProvider())
		return func(context.Context) error { return nil }, nil
	}

	res := resource.NewSchemaless(attribute.String("service.name", s.ServiceName))
	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}

	if s.Stdout || s.OTLPEndpoint == "" {
		exp, err := stdoutmetric.New()
		if err != nil {
			return nil, fmt.Errorf("telemetry: stdout exporter: %w", err)
		}
		opts = append(opts, sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(15*time.Second)),
		))
	}

	if s.OTLPEndpoint != "" {
		exp, err := otlpmetrichttp.New(ctx,
			otlpmetrichttp.WithEndpoint(s.OTLPEndpoint),
			otlpmetrichttp.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("telemetry: otlp exporter: %w", err)
		}
		opts = append(opts, sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(30*time.Second)),
		))
	}

	mp := sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(mp)

	if !s.Stdout {
		otel.SetTracerProvider(tracenoop.NewTracerProvider())
		return mp.Shutdown, nil
	}

	spanExp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("telemetry: stdout trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(spanExp),
	)
	otel.SetTracerProvider(tp)

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}

// Tracer returns the intake tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationScope)
}

// Meter returns a meter from the global provider.
func Meter(name string) metric.Meter {
	if name == "" {
		name = instrumentationScope
	}
	return otel.Meter(name)
}

// IntakeMetrics counts submissions, duplicate rejections and status
// updates per record kind. A nil *IntakeMetrics records nothing.
type IntakeMetrics struct {
	submissions   metric.Int64Counter
	duplicates    metric.Int64Counter
	statusUpdates metric.Int64Counter
}

func NewIntakeMetrics(m metric.Meter) (*IntakeMetrics, error) {
	submissions, err := m.Int64Counter("intake.submissions",
		metric.WithDescription("Accepted submissions"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return nil, err
	}
	duplicates, err := m.Int64Counter("intake.duplicates_rejected",
		metric.WithDescription("Submissions rejected by the 24h duplicate guard"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return nil, err
	}
	statusUpdates, err := m.Int64Counter("intake.status_updates",
		metric.WithDescription("Status changes applied from triage"),
		metric.WithUnit("{update}"),
	)
	if err != nil {
		return nil, err
	}
	return &IntakeMetrics{submissions: submissions, duplicates: duplicates, statusUpdates: statusUpdates}, nil
}

func (m *IntakeMetrics) Submitted(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.submissions.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (m *IntakeMetrics) DuplicateRejected(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.duplicates.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (m *IntakeMetrics) StatusUpdated(ctx context.Context, kind, status string) {
	if m == nil {
		return
	}
	m.statusUpdates.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("status", status),
	))
}
