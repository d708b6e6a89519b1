package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"finviz/internal/aggregator"
	apperrors "finviz/internal/errors"
	"finviz/internal/shared/testutil"
	"finviz/pkg/contracts/domain"
)

func scenarioRows() [][]string {
	return [][]string{
		testutil.StudentRow("Yes", "No", "Yes", "Dropout"),
		testutil.StudentRow("Yes", "No", "No", "Dropout"),
		testutil.StudentRow("Yes", "Yes", "Yes", "Graduate"),
		testutil.StudentRow("No", "Yes", "Yes", "Enrolled"),
	}
}

func TestLoader_LoadCSV(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	path := testutil.WriteStudentCSV(t, t.TempDir(), "students.csv", ",", testutil.StudentHeader, scenarioRows())

	ds, err := NewLoader(logger).Load(context.Background(), path, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, path, ds.Source)
	assert.Equal(t, testutil.StudentHeader, ds.Columns)
	require.Equal(t, 4, ds.Len())
	assert.Equal(t, testutil.Record("Yes", "No", "Yes", "Dropout"), ds.Records[0])
	assert.Equal(t, testutil.Record("No", "Yes", "Yes", "Enrolled"), ds.Records[3])

	assert.True(t, logs.ContainsMessage("Dataset loaded"))
	assert.True(t, logs.ContainsAttr("records", int64(4)))
	testutil.AssertNoErrors(t, logs)
}

func TestLoader_Delimiters(t *testing.T) {
	tests := []struct {
		name      string
		sep       string
		delimiter rune
	}{
		{name: "comma detected", sep: ","},
		{name: "semicolon detected", sep: ";"},
		{name: "tab detected", sep: "\t"},
		{name: "semicolon configured", sep: ";", delimiter: ';'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteStudentCSV(t, t.TempDir(), "students.csv", tt.sep, testutil.StudentHeader, scenarioRows())

			opts := DefaultOptions()
			opts.Delimiter = tt.delimiter
			ds, err := Load(context.Background(), path, opts)
			require.NoError(t, err)
			require.Equal(t, 4, ds.Len())
			assert.Equal(t, "Graduate", ds.Records[2].Target)
		})
	}
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ',', DetectDelimiter([]byte("a,b,c\n1;2;3;4;5\n")))
	assert.Equal(t, ';', DetectDelimiter([]byte("Debtor;Target\nYes;Dropout\n")))
	assert.Equal(t, '\t', DetectDelimiter([]byte("Debtor\tTarget\n")))
	assert.Equal(t, ',', DetectDelimiter([]byte("Debtor\n")))
	assert.Equal(t, ',', DetectDelimiter(nil))
}

func TestLoader_NormalizeBinary(t *testing.T) {
	rows := [][]string{
		testutil.StudentRow("1", "0", " 1 ", "Graduate"),
		testutil.StudentRow("0", "2", "0", " Dropout "),
	}
	path := testutil.WriteStudentCSV(t, t.TempDir(), "student.csv", ";", testutil.StudentHeader, rows)

	t.Run("default keeps raw values", func(t *testing.T) {
		ds, err := Load(context.Background(), path, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, testutil.Record("1", "0", "1", "Graduate"), ds.Records[0])
	})

	t.Run("enabled", func(t *testing.T) {
		ds, err := Load(context.Background(), path, Options{NormalizeBinary: true})
		require.NoError(t, err)
		assert.Equal(t, testutil.Record("Yes", "No", "Yes", "Graduate"), ds.Records[0])
		// Values other than 1 and 0 are kept as they are
		assert.Equal(t, testutil.Record("No", "2", "No", "Dropout"), ds.Records[1])
	})
}

func TestLoader_DefaultOptionsExcludeBinaryFactors(t *testing.T) {
	rows := [][]string{
		testutil.StudentRow("1", "Yes", "Yes", "Dropout"),
	}
	path := testutil.WriteStudentCSV(t, t.TempDir(), "students.csv", ",", testutil.StudentHeader, rows)

	ds, err := Load(context.Background(), path, DefaultOptions())
	require.NoError(t, err)

	for _, row := range aggregator.Aggregate(ds.Records) {
		assert.NotEqual(t, domain.FactorDebtor, row.Factor, "raw 1 must not be grouped as Yes")
	}
}

func TestLoader_MissingColumns(t *testing.T) {
	tests := []struct {
		name    string
		header  []string
		missing []string
	}{
		{
			name:    "no target",
			header:  []string{"Debtor", "Scholarship holder", "Tuition fees up to date"},
			missing: []string{"Target"},
		},
		{
			name:    "only target",
			header:  []string{"Target"},
			missing: []string{"Debtor", "Scholarship holder", "Tuition fees up to date"},
		},
		{
			name:    "case matters",
			header:  []string{"debtor", "Scholarship holder", "Tuition fees up to date", "Target"},
			missing: []string{"Debtor"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteStudentCSV(t, t.TempDir(), "students.csv", ",", tt.header, nil)

			ds, err := Load(context.Background(), path, DefaultOptions())
			require.Error(t, err)
			assert.Nil(t, ds)
			assert.Equal(t, apperrors.ErrTypeDataFormat, apperrors.TypeOf(err))

			var dfe *apperrors.DataFormatError
			require.True(t, errors.As(err, &dfe))
			assert.Equal(t, tt.missing, dfe.Missing)
			assert.Equal(t, path, dfe.Source)
		})
	}
}

func TestLoader_HeaderTrimmedAndBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.csv")
	content := "\xef\xbb\xbfDebtor , Scholarship holder,Tuition fees up to date,Target\nYes,No,Yes,Dropout\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	ds, err := Load(context.Background(), path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, domain.RequiredColumns(), ds.Columns)
	assert.Equal(t, testutil.Record("Yes", "No", "Yes", "Dropout"), ds.Records[0])
}

func TestLoader_HeaderOnly(t *testing.T) {
	path := testutil.WriteStudentCSV(t, t.TempDir(), "students.csv", ",", testutil.StudentHeader, nil)

	ds, err := Load(context.Background(), path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
	assert.Empty(t, ds.OutcomeCounts())
}

func TestLoader_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := Load(context.Background(), path, DefaultOptions())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeDataFormat, apperrors.TypeOf(err))
}

func TestLoader_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")

	_, err := Load(context.Background(), path, DefaultOptions())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeNotFound, apperrors.TypeOf(err))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoader_RaggedRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.csv")
	content := "Debtor,Scholarship holder,Tuition fees up to date,Target\nYes,No,Yes\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(context.Background(), path, DefaultOptions())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeParsing, apperrors.TypeOf(err))
}

func TestLoader_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, "unused.csv", DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func writeWorkbook(t *testing.T, sheet string, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		require.NoError(t, f.SetSheetRow(sheet, cell, &values))
	}

	path := filepath.Join(t.TempDir(), "students.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoader_LoadWorkbook(t *testing.T) {
	rows := append([][]string{testutil.StudentHeader}, scenarioRows()...)

	t.Run("first sheet", func(t *testing.T) {
		path := writeWorkbook(t, "Sheet1", rows)

		ds, err := Load(context.Background(), path, DefaultOptions())
		require.NoError(t, err)
		require.Equal(t, 4, ds.Len())
		assert.Equal(t, testutil.Record("Yes", "Yes", "Yes", "Graduate"), ds.Records[2])
	})

	t.Run("named sheet", func(t *testing.T) {
		path := writeWorkbook(t, "Students", rows)

		opts := DefaultOptions()
		opts.Sheet = "Students"
		ds, err := Load(context.Background(), path, opts)
		require.NoError(t, err)
		assert.Equal(t, 4, ds.Len())
	})

	t.Run("unknown sheet", func(t *testing.T) {
		path := writeWorkbook(t, "Sheet1", rows)

		opts := DefaultOptions()
		opts.Sheet = "Nope"
		_, err := Load(context.Background(), path, opts)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrTypeNotFound, apperrors.TypeOf(err))
	})

	t.Run("short rows padded", func(t *testing.T) {
		path := writeWorkbook(t, "Sheet1", [][]string{
			{"Debtor", "Scholarship holder", "Tuition fees up to date", "Target"},
			{"Yes", "No", "Yes", "Dropout"},
			{"No", "No"},
		})

		ds, err := Load(context.Background(), path, DefaultOptions())
		require.NoError(t, err)
		require.Equal(t, 2, ds.Len())
		assert.Equal(t, "No", ds.Records[1].ScholarshipHolder)
		assert.NotEqual(t, "Yes", ds.Records[1].TuitionUpToDate)
	})
}
