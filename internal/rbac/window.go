package rbac

import (
	"slices"
	"time"

	"github.com/feral-file/ff-crm/internal/domain"
)

// WithinWindow reports whether t falls inside the weekly window. A window
// whose end is before its start spans midnight; its weekday is the day it opened.
// Malformed restrictions deny.
func WithinWindow(r domain.TimeRestrictions, t time.Time) bool {
	if r.IsZero() {
		return true
	}

	loc, err := r.Location()
	if err != nil {
		return false
	}
	local := t.In(loc)
	minute := local.Hour()*60 + local.Minute()

	if r.Start == "" {
		return weekdayAllowed(r.Weekdays, local)
	}

	start, err := domain.ParseClock(r.Start)
	if err != nil {
		return false
	}
	end, err := domain.ParseClock(r.End)
	if err != nil {
		return false
	}

	switch {
	case start < end:
		return minute >= start && minute < end && weekdayAllowed(r.Weekdays, local)
	case minute >= start:
		return weekdayAllowed(r.Weekdays, local)
	case minute < end:
		return weekdayAllowed(r.Weekdays, local.AddDate(0, 0, -1))
	default:
		return false
	}
}

// weekdayAllowed checks the ISO weekday of t against the list; empty allows all
func weekdayAllowed(weekdays []int, t time.Time) bool {
	if len(weekdays) == 0 {
		return true
	}
	day := int(t.Weekday())
	if day == 0 {
		day = 7
	}
	return slices.Contains(weekdays, day)
}
