// Package deliveries defines subscription recurrences, the delivery
// schedule generator and delivery records.
package deliveries

import (
	"errors"
	"fmt"
	"time"
)

// Recurrence is the spacing of subscription deliveries.
type Recurrence string

// Recurrences
const (
	RecurrenceWeekly     Recurrence = "weekly"
	RecurrenceBiweekly   Recurrence = "biweekly"
	RecurrenceMonthly    Recurrence = "monthly"
	RecurrenceFourWeekly Recurrence = "four_weekly"
)

var (
	// ErrNoDeliveryWeekdays is returned when the shop has no delivery weekday configured.
	ErrNoDeliveryWeekdays = errors.New("no delivery weekdays configured")
	// ErrInvalidRecurrence is returned for unknown recurrences.
	ErrInvalidRecurrence = errors.New("invalid recurrence")
	// ErrInvalidCount is returned when the number of deliveries is out of range.
	ErrInvalidCount = errors.New("invalid number of deliveries")
)

// Valid reports whether r is a known recurrence.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceWeekly, RecurrenceBiweekly, RecurrenceMonthly, RecurrenceFourWeekly:
		return true
	}
	return false
}

// Advance returns the nominal date n periods after base. Monthly dates keep
// the day of month of base, clamped to the end of shorter months.
func (r Recurrence) Advance(base time.Time, n int) time.Time {
	switch r {
	case RecurrenceWeekly:
		return base.AddDate(0, 0, 7*n)
	case RecurrenceBiweekly:
		return base.AddDate(0, 0, 14*n)
	case RecurrenceFourWeekly:
		return base.AddDate(0, 0, 28*n)
	case RecurrenceMonthly:
		first := time.Date(base.Year(), base.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
		day := base.Day()
		if last := daysIn(first.Year(), first.Month()); day > last {
			day = last
		}
		return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
	}
	return base
}

// Next returns the nominal date one period after base.
func (r Recurrence) Next(base time.Time) time.Time {
	return r.Advance(base, 1)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NextAllowed returns d itself or the first later date falling on one of weekdays.
func NextAllowed(d time.Time, weekdays []time.Weekday) (time.Time, error) {
	if len(weekdays) == 0 {
		return time.Time{}, ErrNoDeliveryWeekdays
	}
	d = Day(d)
	for i := 0; i < 7; i++ {
		candidate := d.AddDate(0, 0, i)
		if IsAllowed(candidate, weekdays) {
			return candidate, nil
		}
	}
	return time.Time{}, ErrNoDeliveryWeekdays
}

// IsAllowed reports whether d falls on one of weekdays.
func IsAllowed(d time.Time, weekdays []time.Weekday) bool {
	for _, w := range weekdays {
		if d.Weekday() == w {
			return true
		}
	}
	return false
}

// Schedule returns count strictly increasing delivery dates. The first
// nominal date is the later of start and earliest; nominal dates are spaced
// by the recurrence from that first date and each one is shifted forward to
// the next allowed weekday.
func Schedule(start time.Time, r Recurrence, count int, weekdays []time.Weekday, earliest time.Time) ([]time.Time, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRecurrence, r)
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if len(weekdays) == 0 {
		return nil, ErrNoDeliveryWeekdays
	}

	base := Day(start)
	if e := Day(earliest); base.Before(e) {
		base = e
	}

	dates := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		d, err := NextAllowed(r.Advance(base, i), weekdays)
		if err != nil {
			return nil, err
		}
		for len(dates) > 0 && !d.After(dates[len(dates)-1]) {
			if d, err = NextAllowed(r.Next(d), weekdays); err != nil {
				return nil, err
			}
		}
		dates = append(dates, d)
	}
	return dates, nil
}
