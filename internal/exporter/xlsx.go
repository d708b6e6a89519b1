package exporter

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	apperrors "finviz/internal/errors"
	"finviz/internal/files"
	"finviz/internal/infrastructure"
	"finviz/pkg/contracts/domain"
)

// Sheet names of the workbook export
const (
	AggregationSheet = "Aggregation"
	OutcomesSheet    = "Outcomes"
)

// XLSXWriter writes the report tables to an Excel workbook
type XLSXWriter struct {
	logger *slog.Logger
	files  *files.Manager
}

// NewXLSXWriter creates a new workbook writer
func NewXLSXWriter(logger *slog.Logger) *XLSXWriter {
	return &XLSXWriter{
		logger: infrastructure.WithComponent(logger, "exporter"),
		files:  files.NewManager(logger),
	}
}

// WriteWorkbook writes the aggregation rows and the outcome counts to two sheets
func (w *XLSXWriter) WriteWorkbook(filePath string, rows []domain.AggregationRow, counts []domain.OutcomeCount) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", AggregationSheet); err != nil {
		return apperrors.NewStorageError("failed to name aggregation sheet", err)
	}
	if _, err := f.NewSheet(OutcomesSheet); err != nil {
		return apperrors.NewStorageError("failed to create outcomes sheet", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return apperrors.NewStorageError("failed to create header style", err)
	}

	aggregation := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		aggregation = append(aggregation, []interface{}{
			string(r.Factor),
			string(r.Status),
			string(r.Outcome),
			roundPercentage(r.Percentage).InexactFloat64(),
		})
	}
	if err := writeSheet(f, AggregationSheet, AggregationHeaders, aggregation, headerStyle); err != nil {
		return apperrors.NewStorageError("failed to fill aggregation sheet", err)
	}

	outcomes := make([][]interface{}, 0, len(counts))
	for _, c := range counts {
		outcomes = append(outcomes, []interface{}{c.Outcome, c.Count})
	}
	if err := writeSheet(f, OutcomesSheet, OutcomeHeaders, outcomes, headerStyle); err != nil {
		return apperrors.NewStorageError("failed to fill outcomes sheet", err)
	}

	if err := f.SetColWidth(AggregationSheet, "A", "A", 24); err != nil {
		return apperrors.NewStorageError("failed to size columns", err)
	}

	err = w.files.Write(filePath, func(out io.Writer) error {
		_, err := f.WriteTo(out)
		return err
	})
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to write workbook %s", filePath), err)
	}

	w.logger.Info("Workbook written",
		slog.String("file_path", filePath),
		slog.Int("aggregation_rows", len(rows)),
		slog.Int("outcomes", len(counts)))
	return nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}, headerStyle int) error {
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
