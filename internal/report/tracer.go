package report

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"finviz/internal/infrastructure"
)

// RunTracer provides OpenTelemetry instrumentation for report runs
type RunTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.RunMetrics
}

// NewRunTracer creates a tracer backed by tel. A nil tel records nothing.
func NewRunTracer(tel *infrastructure.Telemetry) *RunTracer {
	if tel == nil {
		return &RunTracer{tracer: tracenoop.NewTracerProvider().Tracer(infrastructure.MeterName)}
	}
	return &RunTracer{tracer: tel.Tracer, metrics: tel.Metrics}
}

// TraceRun creates the root span of a run
func (rt *RunTracer) TraceRun(ctx context.Context, runID, input string) (context.Context, trace.Span) {
	return rt.tracer.Start(ctx, "report.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("run.input", input),
		),
	)
}

// TraceStep creates a span for one step of a run
func (rt *RunTracer) TraceStep(ctx context.Context, runID, step string) (context.Context, trace.Span) {
	return rt.tracer.Start(ctx, fmt.Sprintf("report.%s", step),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("step.name", step),
		),
	)
}

// RecordStepCompletion records step outcome on the span and in the step histogram.
// ctx must carry span.
func (rt *RunTracer) RecordStepCompletion(ctx context.Context, span trace.Span, step string, duration time.Duration, items int64, err error) {
	span.SetAttributes(
		attribute.Float64("step.duration_seconds", duration.Seconds()),
		attribute.Int64("step.items", items),
	)
	rt.metrics.RecordStep(ctx, step, duration, err)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		return
	}
	span.SetStatus(codes.Ok, "step completed")
}

// RecordRunCompletion records the run outcome on the root span and in the run counter
func (rt *RunTracer) RecordRunCompletion(ctx context.Context, span trace.Span, duration time.Duration, err error) {
	span.SetAttributes(attribute.Float64("run.duration_seconds", duration.Seconds()))
	rt.metrics.RecordRun(ctx, err)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		return
	}
	span.SetStatus(codes.Ok, "run completed")
}

// RecordLoaded counts loaded records
func (rt *RunTracer) RecordLoaded(ctx context.Context, n int) {
	if rt.metrics == nil {
		return
	}
	rt.metrics.RecordsLoaded.Add(ctx, int64(n))
}

// RecordRows counts emitted aggregation rows
func (rt *RunTracer) RecordRows(ctx context.Context, n int) {
	if rt.metrics == nil {
		return
	}
	rt.metrics.RowsEmitted.Add(ctx, int64(n))
}
