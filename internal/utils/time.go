package utils

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/julianstephens/lifecal/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// Clock returns a function yielding the current time in the given timezone, falling back
// to local time when the zone cannot be loaded.
func Clock(timezone string) func() time.Time {
	loc, err := LoadLocation(timezone)
	if err != nil {
		loc = time.Local
	}
	return func() time.Time { return time.Now().In(loc) }
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDate parses a YYYY-MM-DD string at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(constants.DateFormat, s)
}

// ParseDateOrToday accepts YYYY-MM-DD or the literal "today".
func ParseDateOrToday(s string, now time.Time) (string, error) {
	if s == "" || s == "today" {
		return FormatDate(now), nil
	}
	if _, err := ParseDate(s); err != nil {
		return "", fmt.Errorf("invalid date %q, use YYYY-MM-DD or 'today'", s)
	}
	return s, nil
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
