package pickup

import "time"

// LeadTime is how far ahead of "now" the earliest pickup can be.
const LeadTime = 2 * time.Hour

// DefaultTimeZone is where the store operates.
const DefaultTimeZone = "America/New_York"

// window is one row of the store's business-hours table. Hours are local to the store.
type window struct {
	start     int // earliest pickup hour on this day
	end       int // pickups at or after this hour roll to the next day
	nextDayAt int // hour used on the following day after the cutoff
}

// windows holds store hours plus the same-day cutoff. Monday and Saturday roll
// over to a different hour than the day itself opens at.
var windows = map[time.Weekday]window{
	time.Sunday:    {start: 13, end: 20, nextDayAt: 13},
	time.Monday:    {start: 13, end: 20, nextDayAt: 12},
	time.Tuesday:   {start: 12, end: 21, nextDayAt: 12},
	time.Wednesday: {start: 12, end: 21, nextDayAt: 12},
	time.Thursday:  {start: 12, end: 21, nextDayAt: 12},
	time.Friday:    {start: 12, end: 21, nextDayAt: 12},
	time.Saturday:  {start: 12, end: 21, nextDayAt: 13},
}

// NextSlot returns the next pickup slot for now, evaluated in now's location.
// The weekday rule applied is the one of now+LeadTime.
//
// Example:
//
//	mon := time.Date(2026, 10, 19, 19, 0, 0, 0, ny) // Monday 19:00
//	pickup.NextSlot(mon).String() // "2026-10-20 12:00"
func NextSlot(now time.Time) Slot {
	t := now.Add(LeadTime)
	t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())

	w := windows[t.Weekday()]
	start := atHour(t, 0, w.start)
	end := atHour(t, 0, w.end)

	switch {
	case t.Before(start):
		return Slot{At: start}
	case !t.Before(end):
		return Slot{At: atHour(t, 1, w.nextDayAt)}
	default:
		return Slot{At: t}
	}
}

func atHour(t time.Time, addDays, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+addDays, hour, 0, 0, 0, t.Location())
}

// Scheduler pins NextSlot to the store's time zone and clock.
type Scheduler struct {
	location *time.Location
	now      func() time.Time
}

// NewScheduler creates a scheduler for the store's location. A nil location
// means UTC; a nil clock means time.Now.
func NewScheduler(location *time.Location, now func() time.Time) *Scheduler {
	if location == nil {
		location = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Scheduler{location: location, now: now}
}

// Next returns the next pickup slot from the scheduler's clock.
func (s *Scheduler) Next() Slot {
	return s.At(s.now())
}

// At returns the pickup slot for an arbitrary instant.
func (s *Scheduler) At(t time.Time) Slot {
	return NextSlot(t.In(s.location))
}

// Location returns the store's time zone.
func (s *Scheduler) Location() *time.Location {
	return s.location
}
