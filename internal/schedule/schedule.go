// Package schedule converts zone-naive due dates and times into instants.
package schedule

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DateLayout is the layout of due and reminder dates.
	DateLayout = "2006-01-02"
	// ClockLayout is the layout of due and reminder times.
	ClockLayout = "15:04"
)

var (
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidClock    = errors.New("invalid time, expected HH:MM")
	ErrInvalidTimezone = errors.New("invalid timezone")
)

// Location loads an IANA zone; the empty string is UTC.
func Location(timezone string) (*time.Location, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidTimezone, timezone, err)
	}
	return loc, nil
}

// At resolves a local date and optional time in timezone. A missing time
// means the start of the day.
func At(date string, clock *string, timezone string) (time.Time, error) {
	loc, err := Location(timezone)
	if err != nil {
		return time.Time{}, err
	}

	d, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if clock == nil || *clock == "" {
		return d, nil
	}

	c, err := time.Parse(ClockLayout, *clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidClock, *clock)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, loc), nil
}

// Window returns the start and end instants of a due date. With a time the
// end is start plus duration minutes; a date-only item spans the whole day.
func Window(date string, clock *string, timezone string, durationMinutes int) (time.Time, time.Time, error) {
	start, err := At(date, clock, timezone)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if clock == nil || *clock == "" {
		return start, start.AddDate(0, 0, 1), nil
	}
	return start, End(start, durationMinutes), nil
}

// End returns start plus a non-negative duration in minutes.
func End(start time.Time, durationMinutes int) time.Time {
	if durationMinutes <= 0 {
		return start
	}
	return start.Add(time.Duration(durationMinutes) * time.Minute)
}

// LocalDateTime renders an instant as a date and time in timezone.
func LocalDateTime(t time.Time, timezone string) (string, string, error) {
	loc, err := Location(timezone)
	if err != nil {
		return "", "", err
	}
	local := t.In(loc)
	return local.Format(DateLayout), local.Format(ClockLayout), nil
}
