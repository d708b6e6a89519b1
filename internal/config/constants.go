package config

import (
	"time"

	"finviz/pkg/contracts"
)

// Application constants for the financial stability report
const (
	// Application Info
	AppName    = "Financial Stability Report"
	AppVersion = contracts.Version

	// Environment variable prefix (FINVIZ_INPUT_PATH, FINVIZ_LOGGING_LEVEL, ...)
	EnvPrefix = "FINVIZ"

	// File Paths (relative to the working directory)
	DefaultInputPath         = "data/cleaned_students.csv"
	DefaultOutputHTML        = "viz2_altair.html"
	DefaultLogFile           = "logs/financial-stability.log"
	DefaultExportCSV         = "data/reports/financial_stability.csv"
	DefaultExportOutcomesCSV = "data/reports/outcome_distribution.csv"
	DefaultExportXLSX        = "data/reports/financial_stability.xlsx"
	DefaultSnapshot          = "viz2_altair.png"

	// Chart Dimensions (per facet)
	DefaultChartWidth  = 180
	DefaultChartHeight = 350

	// Chart Typography
	DefaultChartFont      = "Georgia, Times New Roman, serif"
	AxisLabelFontSize     = 11
	AxisYLabelFontSize    = 10
	AxisTitleFontSize     = 11
	LegendTitleFontSize   = 12
	LegendLabelFontSize   = 11
	FacetHeaderFontSize   = 13
	FacetHeaderPadding    = 15
	LegendPadding         = 10
	LegendCornerRadius    = 5
	GridOpacity           = 0.3
	AxisDomainColor       = "#333"
	ChartBackgroundColor  = "white"
	LegendStrokeColor     = "gray"
	PercentageTooltipSpec = ".2f"

	// Vega runtime used by the HTML artifact
	VegaVersion      = "5"
	VegaLiteVersion  = "5.20.1"
	VegaEmbedVersion = "6"

	// Snapshot
	DefaultSnapshotTimeout = 30 * time.Second

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Outcome palette in outcome order: Graduate, Enrolled, Dropout
var DefaultOutcomeColors = []string{"#4CAF50", "#2196F3", "#F44336"}

// Console messages printed on success
const (
	MsgChartSaved      = "Chart saved successfully!"
	MsgDataSummary     = "Data Summary:"
	MsgOutcomeHeadline = "Outcome distribution:"
)
