package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"finviz/internal/config"
)

const (
	ServiceName = "financial-stability-report"
	MeterName   = "finviz"
)

// TelemetryOptions holds resolved OpenTelemetry settings for one run
type TelemetryOptions struct {
	// TraceExporter is "none" or "stdout"
	TraceExporter string
	// TraceFile receives stdout spans; empty writes to stderr
	TraceFile string
	// MetricsFile receives a Prometheus textfile on Shutdown; empty disables metrics
	MetricsFile string
}

// TelemetryOptionsFrom resolves telemetry options from configuration and paths
func TelemetryOptionsFrom(cfg config.TelemetryConfig, paths *config.Paths) TelemetryOptions {
	return TelemetryOptions{
		TraceExporter: cfg.TraceExporter,
		TraceFile:     paths.TraceFile,
		MetricsFile:   paths.Metrics,
	}
}

// Telemetry holds the OpenTelemetry providers of a run
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Registry       *prometheus.Registry
	Metrics        *RunMetrics

	metricsFile string
	traceOut    io.Closer
	logger      *slog.Logger
}

// RunMetrics are the report's instruments
type RunMetrics struct {
	RecordsLoaded metric.Int64Counter
	RowsEmitted   metric.Int64Counter
	StepDuration  metric.Float64Histogram
	Runs          metric.Int64Counter
}

// InitializeTelemetry sets up tracing and metrics. With both disabled it
// returns no-op providers so callers never branch on telemetry.
func InitializeTelemetry(opts TelemetryOptions, logger *slog.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = GetLogger()
	}

	t := &Telemetry{
		Tracer:      tracenoop.NewTracerProvider().Tracer(MeterName),
		Meter:       metricnoop.NewMeterProvider().Meter(MeterName),
		metricsFile: opts.MetricsFile,
		logger:      logger,
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(config.AppVersion),
	)

	if err := t.initializeTracing(opts, res); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if err := t.initializeMetrics(opts, res); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	metrics, err := CreateRunMetrics(t.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create run metrics: %w", err)
	}
	t.Metrics = metrics

	logger.Debug("Telemetry initialized",
		slog.String("trace_exporter", opts.TraceExporter),
		slog.Bool("metrics_enabled", opts.MetricsFile != ""))

	return t, nil
}

// initializeTracing sets up span export
func (t *Telemetry) initializeTracing(opts TelemetryOptions, res *resource.Resource) error {
	var out io.Writer

	switch opts.TraceExporter {
	case "", "none":
		return nil
	case "stdout":
		out = os.Stderr
		if opts.TraceFile != "" {
			if err := os.MkdirAll(filepath.Dir(opts.TraceFile), 0755); err != nil {
				return fmt.Errorf("failed to create trace directory: %w", err)
			}
			f, err := os.Create(opts.TraceFile)
			if err != nil {
				return fmt.Errorf("failed to create trace file: %w", err)
			}
			t.traceOut = f
			out = f
		}
	default:
		return fmt.Errorf("unsupported trace exporter: %s", opts.TraceExporter)
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(out),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	// Spans are exported synchronously: the process exits right after the run
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)
	t.TracerProvider = tp
	t.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(config.AppVersion))
	return nil
}

// initializeMetrics backs the meter with a private Prometheus registry
func (t *Telemetry) initializeMetrics(opts TelemetryOptions, res *resource.Resource) error {
	if opts.MetricsFile == "" {
		return nil
	}

	registry := prometheus.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	t.Registry = registry
	t.MeterProvider = mp
	t.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(config.AppVersion))
	return nil
}

// CreateRunMetrics creates the report instruments on meter
func CreateRunMetrics(meter metric.Meter) (*RunMetrics, error) {
	recordsLoaded, err := meter.Int64Counter(
		"finviz_records_loaded",
		metric.WithDescription("Number of student records loaded"),
	)
	if err != nil {
		return nil, err
	}

	rowsEmitted, err := meter.Int64Counter(
		"finviz_aggregation_rows",
		metric.WithDescription("Number of aggregation rows emitted"),
	)
	if err != nil {
		return nil, err
	}

	stepDuration, err := meter.Float64Histogram(
		"finviz_step_duration_seconds",
		metric.WithDescription("Report step duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	runs, err := meter.Int64Counter(
		"finviz_runs",
		metric.WithDescription("Number of report runs by outcome"),
	)
	if err != nil {
		return nil, err
	}

	return &RunMetrics{
		RecordsLoaded: recordsLoaded,
		RowsEmitted:   rowsEmitted,
		StepDuration:  stepDuration,
		Runs:          runs,
	}, nil
}

// RecordStep records the duration and outcome of one report step
func (m *RunMetrics) RecordStep(ctx context.Context, step string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.StepDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("step", step),
		attribute.Bool("success", err == nil),
	))
}

// RecordRun records the final outcome of a run
func (m *RunMetrics) RecordRun(ctx context.Context, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.Runs.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// Shutdown writes the metrics textfile, then flushes and closes the providers
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if t.Registry != nil && t.metricsFile != "" {
		if err := os.MkdirAll(filepath.Dir(t.metricsFile), 0755); err != nil {
			errs = append(errs, fmt.Errorf("metrics directory: %w", err))
		} else if err := prometheus.WriteToTextfile(t.metricsFile, t.Registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics textfile: %w", err))
		} else {
			t.logger.DebugContext(ctx, "Wrote metrics textfile", slog.String("path", t.metricsFile))
		}
	}

	if t.TracerProvider != nil {
		if err := t.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if t.MeterProvider != nil {
		if err := t.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if t.traceOut != nil {
		if err := t.traceOut.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close trace file: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown errors: %v", errs)
	}
	return nil
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// TraceIDFromContext extracts the OpenTelemetry trace ID from context
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}
