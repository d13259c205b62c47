package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoData signals that a provider returned nothing for an instrument and range.
	ErrNoData = errors.New("no data")

	// ErrInvalidRange signals a window whose end is before its start.
	ErrInvalidRange = errors.New("invalid date range")
)

// DateLayout is the wire format of dates in query parameters and payloads.
const DateLayout = "2006-01-02"

// Window is the user-selected analysis range. Both ends are inclusive.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewWindow returns a Window truncated to calendar days.
func NewWindow(start, end time.Time) Window {
	return Window{Start: DateOnly(start), End: DateOnly(end)}
}

// Validate returns ErrInvalidRange when End is before Start.
func (w Window) Validate() error {
	if w.End.Before(w.Start) {
		return fmt.Errorf("%w: end %s before start %s", ErrInvalidRange,
			w.End.Format(DateLayout), w.Start.Format(DateLayout))
	}
	return nil
}

// String renders the window as "start..end".
func (w Window) String() string {
	return w.Start.Format(DateLayout) + ".." + w.End.Format(DateLayout)
}
