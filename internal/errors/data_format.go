package errors

import (
	"fmt"
	"strings"
)

// DataFormatError reports input data that lacks the columns the report reads
type DataFormatError struct {
	Source  string
	Missing []string
}

// Error implements the error interface
func (e *DataFormatError) Error() string {
	quoted := make([]string, len(e.Missing))
	for i, col := range e.Missing {
		quoted[i] = fmt.Sprintf("%q", col)
	}
	if e.Source == "" {
		return fmt.Sprintf("missing required columns: %s", strings.Join(quoted, ", "))
	}
	return fmt.Sprintf("%s: missing required columns: %s", e.Source, strings.Join(quoted, ", "))
}

// NewDataFormatError wraps a DataFormatError in an AppError of type ErrTypeDataFormat
// so callers can match either with errors.As.
func NewDataFormatError(source string, missing []string) *AppError {
	cause := &DataFormatError{Source: source, Missing: missing}
	return NewAppError(ErrTypeDataFormat, "input data is missing required columns", cause).
		WithContext("source", source).
		WithContext("missing_columns", missing)
}
