package stats

import (
	"errors"
	"fmt"
)

// ErrNoRecords indicates statistics were requested for an empty record list.
var ErrNoRecords = errors.New("no time records")

// ErrorKind categorizes statistics failures.
type ErrorKind string

const (
	// KindDivideByZero is returned when there are no working days to average over.
	KindDivideByZero ErrorKind = "divide_by_zero"

	// KindMedianIndex is returned when legacy median indexing runs past the last record.
	KindMedianIndex ErrorKind = "median_index"

	// KindInvalidDate is returned when a record date cannot be converted to days.
	KindInvalidDate ErrorKind = "invalid_date"
)

// StatsError reports why statistics could not be computed.
type StatsError struct {
	Kind ErrorKind
	Err  error
}

func (e *StatsError) Error() string {
	return fmt.Sprintf("computing statistics (%s): %v", e.Kind, e.Err)
}

func (e *StatsError) Unwrap() error {
	return e.Err
}
