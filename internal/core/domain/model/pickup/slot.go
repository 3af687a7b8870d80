// Package pickup computes when the courier can collect a shipment from the store.
package pickup

import "time"

const (
	// DateLayout is the courier's wire format for the pickup date.
	DateLayout = "2006-01-02"
	// TimeLayout is the courier's wire format for the pickup time of day.
	TimeLayout = "15:04"
)

// Slot is a pickup moment with minute precision.
type Slot struct {
	At time.Time
}

// Date returns the calendar date part, e.g. "2026-10-19".
func (s Slot) Date() string {
	return s.At.Format(DateLayout)
}

// Time returns the hour:minute part, e.g. "13:00".
func (s Slot) Time() string {
	return s.At.Format(TimeLayout)
}

// IsZero reports whether the slot was never computed.
func (s Slot) IsZero() bool {
	return s.At.IsZero()
}

func (s Slot) String() string {
	return s.Date() + " " + s.Time()
}
