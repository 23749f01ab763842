// Package datetime provides date and time utility functions.
package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
)

const (
	// DateLayout is the format expected in config files and is also the output
	// date format.
	DateLayout = constants.DateLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses a YYYY-MM-DD date. An empty string resolves to the date
// portion of now.
func ParseDate(date string, now time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(date)
	if trimmed == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected %s: %w", date, DateLayout, err)
	}
	return t, nil
}

// FormatDate renders a date in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// AddMonths returns anchor advanced by the given number of calendar months.
// The anchor's day of month is kept where the target month has it and is
// clamped to the target month's last day otherwise, so a Jan 31 anchor yields
// Feb 29 (leap year), Mar 31, Apr 30 and so on without drifting.
func AddMonths(anchor time.Time, months int) time.Time {
	y, m, d := anchor.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, anchor.Location())
	if last := DaysInMonth(firstOfTarget); d > last {
		d = last
	}
	ty, tm, _ := firstOfTarget.Date()
	h, mi, s := anchor.Clock()
	return time.Date(ty, tm, d, h, mi, s, anchor.Nanosecond(), anchor.Location())
}

// AddDays returns t advanced by the given number of days.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// DaysInMonth returns the number of days in t's month.
func DaysInMonth(t time.Time) int {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// IsJanuary identifies whether a given date falls in January.
func IsJanuary(t time.Time) bool {
	return t.Month() == time.January
}
