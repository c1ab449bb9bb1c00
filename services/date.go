package services

import (
	"fmt"
	"time"
)

// DateLayout is the day format accepted by the admin filters and exports
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD day in UTC
func ParseDate(dateStr string) (time.Time, error) {
	parsedTime, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", dateStr)
	}
	return parsedTime, nil
}

// ParseDayRange turns an inclusive pair of days into a half-open time
// range. Either bound may be empty, leaving that side of the range zero.
func ParseDayRange(since, until string) (time.Time, time.Time, error) {
	var from, to time.Time
	if since != "" {
		t, err := ParseDate(since)
		if err != nil {
			return from, to, fmt.Errorf("since: %w", err)
		}
		from = t
	}
	if until != "" {
		t, err := ParseDate(until)
		if err != nil {
			return from, to, fmt.Errorf("until: %w", err)
		}
		to = t.AddDate(0, 0, 1)
	}
	if !from.IsZero() && !to.IsZero() && !to.After(from) {
		return from, to, fmt.Errorf("until %s is before since %s", until, since)
	}
	return from, to, nil
}
