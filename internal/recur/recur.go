// Package recur computes recurrence due dates and savings-plan progress.
// Everything here is pure calendar and ratio arithmetic over explicit
// inputs; nothing reads a clock.
package recur

import (
	"fmt"
	"time"

	"github.com/daybook-dev/daybook/internal/model"
)

// NextDueDate returns the first due date strictly after lastDate for the
// given rule. Dates are treated as timezone-free calendar days; the result
// keeps lastDate's location with the time set to midnight.
func NextDueDate(rule model.RecurrenceRule, lastDate time.Time) (time.Time, error) {
	if err := rule.Validate(); err != nil {
		return time.Time{}, fmt.Errorf("invalid recurrence rule: %w", err)
	}

	last := midnight(lastDate)

	switch rule.Frequency {
	case model.FreqDaily:
		return last.AddDate(0, 0, 1), nil

	case model.FreqWeekly:
		// Next date at least one day out whose ISO weekday matches the
		// anchor; same-weekday input rolls a full week forward.
		next := last.AddDate(0, 0, 1)
		for isoWeekday(next) != rule.Anchor {
			next = next.AddDate(0, 0, 1)
		}
		return next, nil

	case model.FreqMonthly:
		year, month := last.Year(), int(last.Month())+1
		if month > 12 {
			month = 1
			year++
		}
		day := clampDay(rule.Anchor, year, month)
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, last.Location()), nil

	case model.FreqYearly:
		year := last.Year() + 1
		day := clampDay(last.Day(), year, int(last.Month()))
		return time.Date(year, last.Month(), day, 0, 0, 0, 0, last.Location()), nil
	}

	return time.Time{}, fmt.Errorf("unknown frequency %q", rule.Frequency)
}

// isoWeekday maps Go's Sunday=0 convention to ISO 1=Monday..7=Sunday.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// clampDay limits day to the last valid day of the given month.
func clampDay(day, year, month int) int {
	// Day 0 of the next month is the last day of this one.
	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > lastDay {
		return lastDay
	}
	return day
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
