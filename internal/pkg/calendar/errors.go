package calendar

import (
	"fmt"
	"strings"
)

// DateListError reports every offending date of a batch at once so the
// caller can correct them in a single round-trip. It unwraps to its kind.
type DateListError struct {
	kind  error
	dates []Date
}

func NewDateListError(kind error, dates []Date) *DateListError {
	sorted := make([]Date, len(dates))
	copy(sorted, dates)
	SortDates(sorted)
	return &DateListError{kind: kind, dates: sorted}
}

func (e *DateListError) Error() string {
	return fmt.Sprintf("%v: [%s]", e.kind, strings.Join(Strings(e.dates), ", "))
}

func (e *DateListError) Unwrap() error { return e.kind }

func (e *DateListError) Dates() []string { return Strings(e.dates) }
