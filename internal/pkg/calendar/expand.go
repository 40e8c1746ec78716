package calendar

import (
	"fmt"
	"sort"
	"time"
)

// WeekdayMask selects days of the week; the zero value selects every day.
type WeekdayMask uint8

func NewWeekdayMask(days ...int) (WeekdayMask, error) {
	var m WeekdayMask
	for _, d := range days {
		if d < 0 || d > 6 {
			return 0, fmt.Errorf("%w: weekday %d outside 0..6", ErrInvalidRange, d)
		}
		m |= 1 << uint(d)
	}
	return m, nil
}

func (m WeekdayMask) Empty() bool { return m == 0 }

func (m WeekdayMask) Has(w time.Weekday) bool {
	return m.Empty() || m&(1<<uint(w)) != 0
}

// Expand returns the dates in [start, end) whose weekday is in mask,
// ascending and without duplicates.
func Expand(start, end Date, mask WeekdayMask) ([]Date, error) {
	if start.IsZero() || end.IsZero() || start.After(end) {
		return nil, fmt.Errorf("%w: %s..%s", ErrInvalidRange, start, end)
	}

	n := DaysBetween(start, end)
	out := make([]Date, 0, n)
	for i := 0; i < n; i++ {
		d := start.AddDays(i)
		if mask.Has(d.Weekday()) {
			out = append(out, d)
		}
	}
	return out, nil
}

// ExpandStrings parses YYYY-MM-DD bounds and weekday numbers (0=Sunday).
func ExpandStrings(start, end string, weekdays []int) ([]Date, error) {
	from, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := ParseDate(end)
	if err != nil {
		return nil, err
	}
	mask, err := NewWeekdayMask(weekdays...)
	if err != nil {
		return nil, err
	}
	return Expand(from, to, mask)
}

func Strings(dates []Date) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.String()
	}
	return out
}

func SortDates(dates []Date) {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
}
