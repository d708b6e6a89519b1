// Package exporter writes the aggregation table as side exports of a report
// run: a CSV file and an Excel workbook, each optional.
//
// Percentages are rounded to two decimal places with shopspring/decimal.
// Every file is written atomically through the files package.
//
//	e := exporter.New(logger, exporter.Options{CSVPath: "data/reports/financial_stability.csv", BOMPrefix: true})
//	written, err := e.Export(ctx, rows, ds.OutcomeCounts())
package exporter
