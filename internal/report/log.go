package report

import (
	"context"
	"log/slog"
	"time"

	"finviz/internal/infrastructure"
)

func (r *Runner) logRunStart(ctx context.Context, runID string) {
	r.logger.InfoContext(ctx, "run_start",
		slog.String("run_id", runID),
		slog.String("otel_trace_id", infrastructure.TraceIDFromContext(ctx)),
		slog.String("input", r.paths.InputFile),
		slog.String("output", r.paths.OutputHTML))
}

func (r *Runner) logRunComplete(ctx context.Context, runID string, duration time.Duration, rows int) {
	r.logger.InfoContext(ctx, "run_complete",
		slog.String("run_id", runID),
		slog.Int("rows", rows),
		slog.Duration("duration", duration))
}

func (r *Runner) logRunError(ctx context.Context, runID string, err error) {
	r.logger.ErrorContext(ctx, "run_error",
		slog.String("run_id", runID),
		slog.String("error", err.Error()))
}

func (r *Runner) logStepStart(ctx context.Context, step string) {
	r.logger.DebugContext(ctx, "step_start",
		slog.String("step", step))
}

func (r *Runner) logStepComplete(ctx context.Context, step string, duration time.Duration, items int64) {
	r.logger.InfoContext(ctx, "step_complete",
		slog.String("step", step),
		slog.Int64("items", items),
		slog.Duration("duration", duration))
}

func (r *Runner) logStepError(ctx context.Context, step string, err error) {
	r.logger.ErrorContext(ctx, "step_error",
		slog.String("step", step),
		slog.String("error", err.Error()))
}
