package dataset

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	apperrors "finviz/internal/errors"
	"finviz/internal/infrastructure"
	"finviz/pkg/contracts/domain"
)

// candidateDelimiters are tried, in order, when detecting the CSV separator
var candidateDelimiters = []rune{',', ';', '\t'}

// Loader reads student datasets from CSV or Excel files
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader. A nil logger uses the global logger.
func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{logger: infrastructure.WithComponent(logger, "dataset")}
}

// Load reads the dataset at path with a default loader
func Load(ctx context.Context, path string, opts Options) (*Dataset, error) {
	return NewLoader(nil).Load(ctx, path, opts)
}

// Load reads the file at path. Files ending in .xlsx are read as workbooks,
// everything else as delimited text.
func (l *Loader) Load(ctx context.Context, path string, opts Options) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		rows [][]string
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err = l.readWorkbook(ctx, path, opts.Sheet)
	} else {
		rows, err = l.readDelimited(ctx, path, opts.Delimiter)
	}
	if err != nil {
		return nil, err
	}

	ds, err := build(path, rows, opts)
	if err != nil {
		l.logger.ErrorContext(ctx, "Dataset rejected",
			slog.String("source", path),
			slog.String("error", err.Error()))
		return nil, err
	}

	l.logger.InfoContext(ctx, "Dataset loaded",
		slog.String("source", path),
		slog.Int("records", ds.Len()),
		slog.Int("columns", len(ds.Columns)))
	return ds, nil
}

// readDelimited reads every CSV record of the file
func (l *Loader) readDelimited(ctx context.Context, path string, delimiter rune) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("input file %s", path), err)
		}
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to read %s", path), err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	if delimiter == 0 {
		delimiter = DetectDelimiter(data)
		l.logger.DebugContext(ctx, "Detected delimiter",
			slog.String("source", path),
			slog.String("delimiter", string(delimiter)))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to parse %s", path), err)
	}
	return rows, nil
}

// DetectDelimiter picks the candidate separator occurring most often in the
// first line of data. Comma wins ties and empty input.
func DetectDelimiter(data []byte) rune {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if !scanner.Scan() {
		return ','
	}
	header := scanner.Text()

	best, bestCount := ',', 0
	for _, d := range candidateDelimiters {
		if n := strings.Count(header, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// build checks the header and turns raw rows into records
func build(source string, rows [][]string, opts Options) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewDataFormatError(source, domain.RequiredColumns())
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.TrimSpace(name)
	}

	if missing := missingColumns(header); len(missing) > 0 {
		return nil, apperrors.NewDataFormatError(source, missing)
	}

	ds := &Dataset{Columns: header, Source: source, Records: []domain.StudentRecord{}}
	if len(rows) == 1 {
		return ds, nil
	}

	records := make([][]string, 0, len(rows))
	records = append(records, header)
	for _, row := range rows[1:] {
		records = append(records, padRow(row, len(header)))
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to load %s", source), df.Err)
	}

	columns := make(map[string][]string, len(domain.RequiredColumns()))
	for _, name := range domain.RequiredColumns() {
		col := df.Col(name)
		if col.Err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read column %q", name), col.Err)
		}
		columns[name] = col.Records()
	}

	ds.Records = make([]domain.StudentRecord, df.Nrow())
	for i := range ds.Records {
		ds.Records[i] = domain.StudentRecord{
			Debtor:            normalizeFactor(columns[string(domain.FactorDebtor)][i], opts.NormalizeBinary),
			ScholarshipHolder: normalizeFactor(columns[string(domain.FactorScholarshipHolder)][i], opts.NormalizeBinary),
			TuitionUpToDate:   normalizeFactor(columns[string(domain.FactorTuitionUpToDate)][i], opts.NormalizeBinary),
			Target:            strings.TrimSpace(columns[domain.TargetColumn][i]),
		}
	}
	return ds, nil
}

// missingColumns returns the required columns absent from header, in required order
func missingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}

	var missing []string
	for _, name := range domain.RequiredColumns() {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

func normalizeFactor(value string, binary bool) string {
	value = strings.TrimSpace(value)
	if !binary {
		return value
	}
	switch value {
	case "1":
		return string(domain.StatusYes)
	case "0":
		return string(domain.StatusNo)
	}
	return value
}

// padRow extends short rows with empty cells; workbooks drop trailing blanks
func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row[:width]
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
