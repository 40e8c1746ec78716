package calendar

import "fmt"

// StayWindow is a check-in/check-out pair. A same-day window counts as one night.
type StayWindow struct {
	CheckIn  Date
	CheckOut Date
}

func NewStayWindow(checkIn, checkOut Date) (StayWindow, error) {
	if checkIn.IsZero() || checkOut.IsZero() || checkOut.Before(checkIn) {
		return StayWindow{}, fmt.Errorf("%w: check_in %s, check_out %s", ErrInvalidRange, checkIn, checkOut)
	}
	return StayWindow{CheckIn: checkIn, CheckOut: checkOut}, nil
}

// ParseStayWindow returns nil when both bounds are empty.
func ParseStayWindow(checkIn, checkOut string) (*StayWindow, error) {
	if checkIn == "" && checkOut == "" {
		return nil, nil
	}
	if checkIn == "" || checkOut == "" {
		return nil, fmt.Errorf("%w: check_in and check_out must be given together", ErrInvalidRange)
	}
	in, err := ParseDate(checkIn)
	if err != nil {
		return nil, err
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return nil, err
	}
	w, err := NewStayWindow(in, out)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (w StayWindow) Nights() int {
	if n := DaysBetween(w.CheckIn, w.CheckOut); n > 1 {
		return n
	}
	return 1
}

// End is the exclusive upper bound of the nights.
func (w StayWindow) End() Date { return w.CheckIn.AddDays(w.Nights()) }

func (w StayWindow) Dates() []Date {
	out := make([]Date, w.Nights())
	for i := range out {
		out[i] = w.CheckIn.AddDays(i)
	}
	return out
}
