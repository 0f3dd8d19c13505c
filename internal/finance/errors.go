package finance

import (
	"fmt"
	"strings"
)

// SchemaError reports a transaction table that cannot be analysed: either
// required columns are absent or a row carries an unusable value.
type SchemaError struct {
	Missing []string // required columns absent from the table
	Row     int      // 1-based data row, 0 when the error is table-wide
	Detail  string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
	}
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %s", e.Row, e.Detail)
	}
	return e.Detail
}

// AggregationError wraps the first failure hit while computing a metrics
// snapshot. Stage names the pipeline step that failed.
type AggregationError struct {
	Stage string
	Err   error
}

// Error implements the error interface.
func (e *AggregationError) Error() string {
	return fmt.Sprintf("computing financial metrics (%s): %v", e.Stage, e.Err)
}

// Unwrap exposes the root cause to errors.Is/As.
func (e *AggregationError) Unwrap() error { return e.Err }

// MissingMetricError is returned when risk evaluation is handed an
// incomplete snapshot. It signals a caller bug, not bad user input.
type MissingMetricError struct {
	Keys []string
}

// Error implements the error interface.
func (e *MissingMetricError) Error() string {
	if len(e.Keys) == 0 {
		return "missing financial metrics snapshot"
	}
	return fmt.Sprintf("missing required metrics: %s", strings.Join(e.Keys, ", "))
}
