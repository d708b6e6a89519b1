package report

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finviz/internal/config"
	apperrors "finviz/internal/errors"
	"finviz/internal/infrastructure"
	"finviz/internal/shared/testutil"
	"finviz/pkg/contracts/domain"
)

func studentRows() [][]string {
	return [][]string{
		testutil.StudentRow("Yes", "No", "Yes", "Dropout"),
		testutil.StudentRow("Yes", "No", "No", "Dropout"),
		testutil.StudentRow("Yes", "Yes", "Yes", "Graduate"),
		testutil.StudentRow("No", "Yes", "Yes", "Enrolled"),
	}
}

func setupRun(t *testing.T, header []string, rows [][]string) (*config.Config, *config.Paths) {
	t.Helper()

	dir := t.TempDir()
	testutil.WriteStudentCSV(t, dir, "data/cleaned_students.csv", ",", header, rows)

	cfg := config.Default()
	return cfg, config.ResolvePaths(cfg, dir)
}

func TestRunner_Run(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	cfg, paths := setupRun(t, testutil.StudentHeader, studentRows())

	res, err := NewRunner(cfg, paths, logger, nil).Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 4, res.Dataset.Len())
	assert.Equal(t, paths.OutputHTML, res.HTMLPath)
	assert.Empty(t, res.Exports)
	assert.Empty(t, res.Snapshot)

	want := []domain.AggregationRow{
		{Factor: domain.FactorDebtor, Status: domain.StatusNo, Outcome: domain.OutcomeGraduate, Percentage: 0},
		{Factor: domain.FactorDebtor, Status: domain.StatusNo, Outcome: domain.OutcomeEnrolled, Percentage: 100},
		{Factor: domain.FactorDebtor, Status: domain.StatusNo, Outcome: domain.OutcomeDropout, Percentage: 0},
		{Factor: domain.FactorDebtor, Status: domain.StatusYes, Outcome: domain.OutcomeGraduate, Percentage: 100.0 / 3},
		{Factor: domain.FactorDebtor, Status: domain.StatusYes, Outcome: domain.OutcomeEnrolled, Percentage: 0},
		{Factor: domain.FactorDebtor, Status: domain.StatusYes, Outcome: domain.OutcomeDropout, Percentage: 200.0 / 3},
	}
	require.Len(t, res.Rows, 18)
	if diff := cmp.Diff(want, res.Rows[:6], cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("debtor rows mismatch (-want +got):\n%s", diff)
	}

	page, err := os.ReadFile(paths.OutputHTML)
	require.NoError(t, err)
	assert.Contains(t, string(page), "vega-embed")
	assert.Contains(t, string(page), `"Tuition fees up to date"`)

	for _, step := range []string{StepValidate, StepLoad, StepAggregate, StepRender, StepExport, StepSnapshot} {
		assert.True(t, logs.ContainsAttr("step", step), "missing step_complete for %s", step)
	}
	assert.True(t, logs.ContainsMessage("run_complete"))
	testutil.AssertNoErrors(t, logs)
}

func TestRunner_Summary(t *testing.T) {
	cfg, paths := setupRun(t, testutil.StudentHeader, studentRows())

	res, err := NewRunner(cfg, paths, nil, nil).Run(context.Background())
	require.NoError(t, err)

	s := res.Summary(cfg.Output.HTMLPath)
	assert.Equal(t, "viz2_altair.html", s.HTMLPath)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, []domain.OutcomeCount{
		{Outcome: "Dropout", Count: 2},
		{Outcome: "Graduate", Count: 1},
		{Outcome: "Enrolled", Count: 1},
	}, s.Outcomes)

	assert.Equal(t, paths.OutputHTML, res.Summary("").HTMLPath)
}

func TestRunner_EmptyDataset(t *testing.T) {
	cfg, paths := setupRun(t, testutil.StudentHeader, nil)

	res, err := NewRunner(cfg, paths, nil, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, res.Rows)
	assert.Equal(t, 0, res.Dataset.Len())
	assert.FileExists(t, paths.OutputHTML)
}

func TestRunner_Failures(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T) (*config.Config, *config.Paths)
		wantType apperrors.ErrorType
	}{
		{
			name: "missing input",
			setup: func(t *testing.T) (*config.Config, *config.Paths) {
				cfg := config.Default()
				return cfg, config.ResolvePaths(cfg, t.TempDir())
			},
			wantType: apperrors.ErrTypeNotFound,
		},
		{
			name: "missing column",
			setup: func(t *testing.T) (*config.Config, *config.Paths) {
				return setupRun(t, []string{"Debtor", "Scholarship holder", "Target"}, [][]string{{"Yes", "No", "Dropout"}})
			},
			wantType: apperrors.ErrTypeDataFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutil.NewTestLogger(t)
			cfg, paths := tt.setup(t)

			res, err := NewRunner(cfg, paths, logger, nil).Run(context.Background())
			require.Error(t, err)
			assert.Nil(t, res)
			assert.Equal(t, tt.wantType, apperrors.TypeOf(err))
			assert.NoFileExists(t, paths.OutputHTML)
			assert.True(t, logs.ContainsMessage("run_error"))
		})
	}
}

func TestRunner_MissingColumnNamesColumn(t *testing.T) {
	cfg, paths := setupRun(t, []string{"Debtor", "Scholarship holder", "Target"}, nil)

	_, err := NewRunner(cfg, paths, nil, nil).Run(context.Background())

	var dfe *apperrors.DataFormatError
	require.True(t, errors.As(err, &dfe))
	assert.Equal(t, []string{"Tuition fees up to date"}, dfe.Missing)
}

func TestRunner_CanceledContext(t *testing.T) {
	cfg, paths := setupRun(t, testutil.StudentHeader, studentRows())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(cfg, paths, nil, nil).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, paths.OutputHTML)
}

func TestRunner_ExportsAndTelemetry(t *testing.T) {
	cfg, paths := setupRun(t, testutil.StudentHeader, studentRows())
	cfg.Export.CSVEnabled = true
	cfg.Export.XLSXEnabled = true
	cfg.Telemetry.TraceExporter = "stdout"
	cfg.Telemetry.TraceFile = "logs/trace.json"
	cfg.Telemetry.MetricsFile = "metrics/finviz.prom"
	paths = config.ResolvePaths(cfg, paths.BaseDir)

	tel, err := infrastructure.InitializeTelemetry(infrastructure.TelemetryOptionsFrom(cfg.Telemetry, paths), nil)
	require.NoError(t, err)

	res, err := NewRunner(cfg, paths, nil, tel).Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, tel.Shutdown(context.Background()))

	assert.Equal(t, []string{paths.ExportCSV, paths.ExportOutcomes, paths.ExportXLSX}, res.Exports)
	assert.FileExists(t, paths.ExportCSV)
	assert.FileExists(t, paths.ExportOutcomes)
	assert.FileExists(t, paths.ExportXLSX)

	traces, err := os.ReadFile(paths.TraceFile)
	require.NoError(t, err)
	assert.Contains(t, string(traces), "report.run")
	assert.Contains(t, string(traces), "report.load")
	assert.Contains(t, string(traces), res.RunID)

	metrics, err := os.ReadFile(paths.Metrics)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "finviz_records_loaded")
	assert.Contains(t, string(metrics), "finviz_step_duration_seconds")
	assert.Contains(t, string(metrics), "finviz_runs")
}

func TestRunner_FailedStepMarksSpan(t *testing.T) {
	cfg, paths := setupRun(t, []string{"Debtor", "Target"}, nil)
	cfg.Telemetry.TraceExporter = "stdout"
	cfg.Telemetry.TraceFile = "logs/trace.json"
	paths = config.ResolvePaths(cfg, paths.BaseDir)

	tel, err := infrastructure.InitializeTelemetry(infrastructure.TelemetryOptionsFrom(cfg.Telemetry, paths), nil)
	require.NoError(t, err)

	logger, logs := testutil.NewTestLogger(t)
	_, runErr := NewRunner(cfg, paths, logger, tel).Run(context.Background())
	require.Error(t, runErr)
	require.NoError(t, tel.Shutdown(context.Background()))

	traces, err := os.ReadFile(paths.TraceFile)
	require.NoError(t, err)
	assert.Contains(t, string(traces), `"Code": "Error"`)
	assert.Contains(t, string(traces), "exception")

	var traceID any
	for _, r := range logs.GetRecords() {
		if r.Message == "run_start" {
			traceID = r.Attrs["otel_trace_id"]
		}
	}
	require.IsType(t, "", traceID)
	assert.Len(t, traceID, 32)
	assert.Contains(t, string(traces), traceID.(string))
}

func TestRunTracer_NilTelemetry(t *testing.T) {
	rt := NewRunTracer(nil)
	ctx, span := rt.TraceStep(context.Background(), "run", StepLoad)
	defer span.End()

	rt.RecordLoaded(ctx, 3)
	rt.RecordRows(ctx, 18)
	rt.RecordStepCompletion(ctx, span, StepLoad, 0, 3, nil)
	assert.False(t, span.IsRecording())
}
