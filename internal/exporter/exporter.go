package exporter

import (
	"context"
	"log/slog"

	"finviz/internal/config"
	"finviz/internal/infrastructure"
	"finviz/pkg/contracts/domain"
)

// Options selects the side exports of a run. An empty path disables that export.
type Options struct {
	CSVPath         string
	OutcomesCSVPath string
	BOMPrefix       bool
	XLSXPath        string
}

// OptionsFrom builds export options from configuration and resolved paths
func OptionsFrom(cfg config.ExportConfig, paths *config.Paths) Options {
	opts := Options{BOMPrefix: cfg.BOMPrefix}
	if cfg.CSVEnabled {
		opts.CSVPath = paths.ExportCSV
		opts.OutcomesCSVPath = paths.ExportOutcomes
	}
	if cfg.XLSXEnabled {
		opts.XLSXPath = paths.ExportXLSX
	}
	return opts
}

// Enabled reports whether any export is selected
func (o Options) Enabled() bool {
	return o.CSVPath != "" || o.OutcomesCSVPath != "" || o.XLSXPath != ""
}

// Exporter writes the enabled side exports
type Exporter struct {
	logger *slog.Logger
	csv    *CSVWriter
	xlsx   *XLSXWriter
	opts   Options
}

// New creates an exporter for opts
func New(logger *slog.Logger, opts Options) *Exporter {
	return &Exporter{
		logger: infrastructure.WithComponent(logger, "exporter"),
		csv:    NewCSVWriter(logger),
		xlsx:   NewXLSXWriter(logger),
		opts:   opts,
	}
}

// Export writes every enabled export and returns the written paths
func (e *Exporter) Export(ctx context.Context, rows []domain.AggregationRow, counts []domain.OutcomeCount) ([]string, error) {
	var written []string

	if e.opts.CSVPath != "" {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if err := e.csv.WriteAggregation(e.opts.CSVPath, rows, e.opts.BOMPrefix); err != nil {
			return written, err
		}
		written = append(written, e.opts.CSVPath)
	}

	if e.opts.OutcomesCSVPath != "" {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if err := e.csv.WriteOutcomes(e.opts.OutcomesCSVPath, counts, e.opts.BOMPrefix); err != nil {
			return written, err
		}
		written = append(written, e.opts.OutcomesCSVPath)
	}

	if e.opts.XLSXPath != "" {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if err := e.xlsx.WriteWorkbook(e.opts.XLSXPath, rows, counts); err != nil {
			return written, err
		}
		written = append(written, e.opts.XLSXPath)
	}

	e.logger.InfoContext(ctx, "Exports complete", slog.Int("files", len(written)))
	return written, nil
}
