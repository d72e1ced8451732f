// Package schedule turns loose date/time requests ("tomorrow", "2pm",
// "2026-03-14") into concrete business-day instants.
package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	contractx "github.com/rentalops/booking-agent/agent/contract"
)

const (
	// ISO8601Millis renders a UTC instant with millisecond precision.
	ISO8601Millis = "2006-01-02T15:04:05.000Z"

	defaultStartHour = 8
)

// Resolved is the concrete start/end pair computed from a ScheduleSpec.
// Both instants are UTC and fall on the same calendar day; EndOfUse is
// 23:59:59.999 of that day.
type Resolved struct {
	DayOfUse time.Time
	EndOfUse time.Time
}

// DayOfUseISO returns the start instant as an ISO-8601 UTC string.
func (r Resolved) DayOfUseISO() string { return r.DayOfUse.UTC().Format(ISO8601Millis) }

// EndOfUseISO returns the end instant as an ISO-8601 UTC string.
func (r Resolved) EndOfUseISO() string { return r.EndOfUse.UTC().Format(ISO8601Millis) }

var timeOfDayPattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)

// Absolute date layouts accepted before falling back to "now + 1 day".
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// Resolve converts a ScheduleSpec into concrete instants relative to now.
// It is total: an empty spec means "next business day at 08:00", and an
// unparseable date degrades to "now + 1 day" instead of failing. The
// resolved day never lands on a Saturday or Sunday; weekend candidates are
// advanced one day at a time until a weekday is reached.
func Resolve(spec contractx.ScheduleSpec, now time.Time) Resolved {
	now = now.UTC()
	day := resolveDay(spec.Date, now)

	for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
		day = day.AddDate(0, 0, 1)
	}

	hour, minute := resolveTimeOfDay(spec.Time)
	return Resolved{
		DayOfUse: time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC),
		EndOfUse: time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 999_000_000, time.UTC),
	}
}

func resolveDay(date string, now time.Time) time.Time {
	switch strings.ToLower(strings.TrimSpace(date)) {
	case "":
		return truncateToDay(now.AddDate(0, 0, 1))
	case "tomorrow":
		return truncateToDay(now.AddDate(0, 0, 1))
	case "next week":
		return truncateToDay(now.AddDate(0, 0, 7))
	case "next month":
		return truncateToDay(now.AddDate(0, 1, 0))
	case "next year":
		return truncateToDay(now.AddDate(1, 0, 0))
	}

	trimmed := strings.TrimSpace(date)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return truncateToDay(parsed.UTC())
		}
	}
	return truncateToDay(now.AddDate(0, 0, 1))
}

// resolveTimeOfDay parses a leading hour with optional minutes and am/pm
// marker. A trailing "pm" adds 12 hours when the parsed hour is below 12.
// Anything unusable falls back to the business-day start.
func resolveTimeOfDay(raw string) (hour, minute int) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return defaultStartHour, 0
	}

	m := timeOfDayPattern.FindStringSubmatch(raw)
	if m == nil {
		return defaultStartHour, 0
	}

	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if m[3] == "pm" && hour < 12 {
		hour += 12
	}

	if hour > 23 || minute > 59 {
		return defaultStartHour, 0
	}
	return hour, minute
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
