package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/xuri/excelize/v2"

	apperrors "finviz/internal/errors"
)

// readWorkbook returns the rows of the named sheet, or of the first sheet
// when name is empty
func (l *Loader) readWorkbook(ctx context.Context, path, name string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("input file %s", path), err)
		}
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to open workbook %s", path), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewParsingError(fmt.Sprintf("workbook %s has no sheets", path), nil)
	}

	sheet := sheets[0]
	if name != "" {
		found := false
		for _, s := range sheets {
			if s == name {
				found = true
				break
			}
		}
		if !found {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("sheet %q", name), nil).
				WithContext("sheets", sheets)
		}
		sheet = name
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %q", sheet), err)
	}

	l.logger.DebugContext(ctx, "Read workbook sheet",
		slog.String("source", path),
		slog.String("sheet", sheet),
		slog.Int("rows", len(rows)))
	return rows, nil
}
