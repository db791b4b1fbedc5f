// Package calendar holds the date-only helpers shared by babies and weight
// entries. Dates are civil days in UTC with no time-of-day component.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

const Layout = "2006-01-02"

func Parse(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	parsed, err := time.Parse(Layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be formatted as YYYY-MM-DD")
	}
	return parsed, nil
}

func Format(value time.Time) string {
	return value.UTC().Format(Layout)
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from -> to; negative when to is earlier.
func DaysBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)).Hours() / 24)
}
