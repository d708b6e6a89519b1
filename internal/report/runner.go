package report

import (
	"context"
	"log/slog"
	"time"

	"finviz/internal/aggregator"
	"finviz/internal/chart"
	"finviz/internal/config"
	"finviz/internal/dataset"
	"finviz/internal/exporter"
	"finviz/internal/infrastructure"
	"finviz/internal/snapshot"
	"finviz/internal/summary"
	"finviz/internal/validation"
	"finviz/pkg/contracts/domain"
)

// Step names, also used as span and metric labels
const (
	StepValidate  = "validate"
	StepLoad      = "load"
	StepAggregate = "aggregate"
	StepRender    = "render"
	StepExport    = "export"
	StepSnapshot  = "snapshot"
)

// Result is the outcome of a successful run
type Result struct {
	RunID    string
	Dataset  *dataset.Dataset
	Rows     []domain.AggregationRow
	HTMLPath string
	Exports  []string
	Snapshot string
	Duration time.Duration
}

// Summary returns the console summary of the run. htmlName is printed in
// place of the resolved chart path.
func (res *Result) Summary(htmlName string) summary.Summary {
	if htmlName == "" {
		htmlName = res.HTMLPath
	}
	return summary.Summary{
		HTMLPath: htmlName,
		Exports:  res.Exports,
		Snapshot: res.Snapshot,
		Total:    res.Dataset.Len(),
		Outcomes: res.Dataset.OutcomeCounts(),
	}
}

// Runner executes the report: load, aggregate, render, write, then the
// optional exports and snapshot
type Runner struct {
	cfg    *config.Config
	paths  *config.Paths
	logger *slog.Logger
	tracer *RunTracer

	validator   *validation.FileValidator
	loader      *dataset.Loader
	aggregator  *aggregator.Aggregator
	renderer    *chart.Renderer
	exporter    *exporter.Exporter
	snapshotter *snapshot.Snapshotter
}

// NewRunner wires a runner. tel may be nil.
func NewRunner(cfg *config.Config, paths *config.Paths, logger *slog.Logger, tel *infrastructure.Telemetry) *Runner {
	logger = infrastructure.WithComponent(logger, "report")
	return &Runner{
		cfg:         cfg,
		paths:       paths,
		logger:      logger,
		tracer:      NewRunTracer(tel),
		validator:   validation.NewFileValidator(logger),
		loader:      dataset.NewLoader(logger),
		aggregator:  aggregator.New(logger),
		renderer:    chart.NewRenderer(logger),
		exporter:    exporter.New(logger, exporter.OptionsFrom(cfg.Export, paths)),
		snapshotter: snapshot.New(logger, snapshot.OptionsFrom(cfg.Snapshot, paths)),
	}
}

// Run executes every step in order and stops at the first error
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	runID := infrastructure.GetTraceID(ctx)
	start := time.Now()

	ctx, span := r.tracer.TraceRun(ctx, runID, r.paths.InputFile)
	defer span.End()

	r.logRunStart(ctx, runID)

	res, err := r.run(ctx, runID)
	duration := time.Since(start)
	r.tracer.RecordRunCompletion(ctx, span, duration, err)
	if err != nil {
		r.logRunError(ctx, runID, err)
		return nil, err
	}

	res.Duration = duration
	r.logRunComplete(ctx, runID, duration, len(res.Rows))
	return res, nil
}

func (r *Runner) run(ctx context.Context, runID string) (*Result, error) {
	res := &Result{RunID: runID, HTMLPath: r.paths.OutputHTML}

	err := r.step(ctx, runID, StepValidate, func(ctx context.Context) (int64, error) {
		if err := r.validator.ValidateInputFile(r.paths.InputFile); err != nil {
			return 0, err
		}
		return 0, r.validator.ValidateOutputFiles(r.paths.OutputHTML)
	})
	if err != nil {
		return nil, err
	}

	err = r.step(ctx, runID, StepLoad, func(ctx context.Context) (int64, error) {
		ds, err := r.loader.Load(ctx, r.paths.InputFile, dataset.OptionsFrom(r.cfg.Input))
		if err != nil {
			return 0, err
		}
		res.Dataset = ds
		r.tracer.RecordLoaded(ctx, ds.Len())
		return int64(ds.Len()), nil
	})
	if err != nil {
		return nil, err
	}

	err = r.step(ctx, runID, StepAggregate, func(ctx context.Context) (int64, error) {
		res.Rows = r.aggregator.Aggregate(res.Dataset.Records)
		r.tracer.RecordRows(ctx, len(res.Rows))
		return int64(len(res.Rows)), nil
	})
	if err != nil {
		return nil, err
	}

	err = r.step(ctx, runID, StepRender, func(ctx context.Context) (int64, error) {
		spec, err := chart.BuildSpec(res.Rows, chart.OptionsFrom(r.cfg.Chart))
		if err != nil {
			return 0, err
		}
		return int64(len(spec.Data.Values)), r.renderer.WriteHTML(r.paths.OutputHTML, spec)
	})
	if err != nil {
		return nil, err
	}

	err = r.step(ctx, runID, StepExport, func(ctx context.Context) (int64, error) {
		written, err := r.exporter.Export(ctx, res.Rows, res.Dataset.OutcomeCounts())
		res.Exports = written
		return int64(len(written)), err
	})
	if err != nil {
		return nil, err
	}

	err = r.step(ctx, runID, StepSnapshot, func(ctx context.Context) (int64, error) {
		path, err := r.snapshotter.Capture(ctx, r.paths.OutputHTML)
		if err != nil || path == "" {
			return 0, err
		}
		res.Snapshot = path
		return 1, nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// step runs fn inside a span, timing and logging it
func (r *Runner) step(ctx context.Context, runID, name string, fn func(ctx context.Context) (int64, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ctx, span := r.tracer.TraceStep(ctx, runID, name)
	defer span.End()

	r.logStepStart(ctx, name)
	start := time.Now()

	items, err := fn(ctx)
	duration := time.Since(start)
	r.tracer.RecordStepCompletion(ctx, span, name, duration, items, err)
	if err != nil {
		r.logStepError(ctx, name, err)
		return err
	}

	r.logStepComplete(ctx, name, duration, items)
	return nil
}
