package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"

	apperrors "finviz/internal/errors"
	"finviz/internal/files"
	"finviz/internal/infrastructure"
	"finviz/pkg/contracts/domain"
)

// AggregationHeaders is the header row of the aggregation export
var AggregationHeaders = []string{"Factor", "Status", "Outcome", "Percentage"}

// OutcomeHeaders is the header row of the outcome frequency export
var OutcomeHeaders = []string{"Outcome", "Count"}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
	files  *files.Manager
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	return &CSVWriter{
		logger: infrastructure.WithComponent(logger, "exporter"),
		files:  files.NewManager(logger),
	}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV atomically writes a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	w.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(options.Records)))

	err := w.files.Write(filePath, func(out io.Writer) error {
		// Write BOM if requested (helps Excel recognize UTF-8)
		if options.BOMPrefix {
			if _, err := out.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
				return fmt.Errorf("failed to write BOM: %w", err)
			}
		}

		writer := csv.NewWriter(out)
		if len(options.Headers) > 0 {
			if err := writer.Write(options.Headers); err != nil {
				return fmt.Errorf("failed to write headers: %w", err)
			}
		}
		for i, record := range options.Records {
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write record %d: %w", i, err)
			}
		}
		writer.Flush()
		return writer.Error()
	})
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to write CSV %s", filePath), err)
	}
	return nil
}

// WriteAggregation writes the aggregation rows with percentages rounded to 2 places
func (w *CSVWriter) WriteAggregation(filePath string, rows []domain.AggregationRow, bom bool) error {
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   AggregationHeaders,
		Records:   AggregationRecords(rows),
		BOMPrefix: bom,
	})
}

// WriteOutcomes writes the outcome frequency table
func (w *CSVWriter) WriteOutcomes(filePath string, counts []domain.OutcomeCount, bom bool) error {
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   OutcomeHeaders,
		Records:   OutcomeRecords(counts),
		BOMPrefix: bom,
	})
}

// AggregationRecords converts rows to CSV records
func AggregationRecords(rows []domain.AggregationRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			string(r.Factor),
			string(r.Status),
			string(r.Outcome),
			formatPercentage(r.Percentage),
		})
	}
	return records
}

// OutcomeRecords converts the outcome frequency table to CSV records
func OutcomeRecords(counts []domain.OutcomeCount) [][]string {
	records := make([][]string, 0, len(counts))
	for _, c := range counts {
		records = append(records, []string{c.Outcome, formatInt(c.Count)})
	}
	return records
}
