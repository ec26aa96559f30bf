package report

import (
	"fmt"
	"strings"
	"time"
)

// Window identifies a reporting bucket relative to a reference instant.
type Window int

const (
	Weekly Window = iota
	Monthly
)

func (w Window) String() string {
	switch w {
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	default:
		return fmt.Sprintf("window(%d)", int(w))
	}
}

// Classification says which windows a record date falls into.
type Classification struct {
	InWeek  bool
	InMonth bool
}

// In reports whether the classification places the record in w.
func (c Classification) In(w Window) bool {
	switch w {
	case Weekly:
		return c.InWeek
	case Monthly:
		return c.InMonth
	default:
		return false
	}
}

// Policy decides window membership of a record date relative to now.
// Record dates are calendar days and are read in their own location; now
// is read in its own location. A single policy must be applied to every
// record of one report.
type Policy interface {
	Name() string
	Classify(date, now time.Time) Classification
}

const (
	PolicyCalendar = "calendar"
	PolicyRolling  = "rolling"
)

// ParsePolicy resolves a configured policy name. Empty selects the calendar policy.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyCalendar:
		return CalendarPolicy{}, nil
	case PolicyRolling:
		return RollingPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown window policy %q", name)
	}
}

// CalendarPolicy buckets weeks as week-of-month: days 1-7 are week 1,
// 8-14 week 2 and so on. A record is in the current week only when year,
// month and week-of-month all match now.
type CalendarPolicy struct{}

func (CalendarPolicy) Name() string { return PolicyCalendar }

func (CalendarPolicy) Classify(date, now time.Time) Classification {
	sameMonth := sameCalendarMonth(date, now)
	return Classification{
		InWeek:  sameMonth && weekOfMonth(date) == weekOfMonth(now),
		InMonth: sameMonth,
	}
}

// RollingPolicy treats the trailing seven calendar days (today included) as
// the current week. The month is still the calendar month of now.
type RollingPolicy struct{}

func (RollingPolicy) Name() string { return PolicyRolling }

func (RollingPolicy) Classify(date, now time.Time) Classification {
	elapsed := daysBetween(date, now)
	return Classification{
		// future records have negative elapsed days and never count
		InWeek:  elapsed >= 0 && elapsed/7+1 == 1,
		InMonth: sameCalendarMonth(date, now),
	}
}

// weekOfMonth returns ceil(day / 7).
func weekOfMonth(t time.Time) int {
	return (t.Day() + 6) / 7
}

func sameCalendarMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// daysBetween counts whole calendar days from a's date to b's date.
// Both are rebuilt at UTC midnight so DST shifts never produce fractional days.
func daysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
