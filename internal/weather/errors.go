package weather

import (
	"errors"
	"fmt"
)

// ErrNotFound is the kind shared by every "no data for this query" outcome.
// Callers match it with errors.Is and format their own message.
var ErrNotFound = errors.New("no readings found")

var (
	ErrYearNotFound  = fmt.Errorf("%w: year", ErrNotFound)
	ErrMonthNotFound = fmt.Errorf("%w: month", ErrNotFound)

	// ErrMissingMetric is returned when the requested period has readings but
	// none of them carries a field a statistic needs.
	ErrMissingMetric = fmt.Errorf("%w: metric", ErrNotFound)
)

// ErrNotLoaded is returned by Service queries issued before the first
// successful Reload.
var ErrNotLoaded = errors.New("readings not loaded")
