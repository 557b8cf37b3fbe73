// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/constants"
)

// DateTimeLayout is the calendar-month format used for payoff dates.
const DateTimeLayout = constants.DateTimeLayout

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}

// AddMonths returns the given anchor time moved forward by the given number
// of calendar months, formatted at month granularity.
func AddMonths(anchor time.Time, months int) string {
	return anchor.AddDate(0, months, 0).Format(DateTimeLayout)
}
