// Package calendar computes the month grid: date arithmetic, per-day status,
// entry badges and what a click on a day should open.
package calendar

import (
	"fmt"
	"time"

	"github.com/julianstephens/lifecal/internal/constants"
)

// Month identifies a calendar month. The zero value is not meaningful.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t, in t's location.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses YYYY-MM.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(constants.MonthFormat, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q (expected YYYY-MM)", s)
	}
	return MonthOf(t), nil
}

// First is midnight UTC of the first day. Normalizes out-of-range months.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Last is midnight UTC of the last day.
func (m Month) Last() time.Time {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC)
}

// DaysIn is the number of days in the month, leap years included.
func (m Month) DaysIn() int {
	return m.Last().Day()
}

// LeadingBlanks is the weekday of the 1st with Sunday as 0, i.e. how many
// empty cells precede it in a Sunday-first grid.
func (m Month) LeadingBlanks() int {
	return int(m.First().Weekday())
}

func (m Month) Prev() Month {
	return MonthOf(time.Date(m.Year, m.Month-1, 1, 0, 0, 0, 0, time.UTC))
}

func (m Month) Next() Month {
	return MonthOf(time.Date(m.Year, m.Month+1, 1, 0, 0, 0, 0, time.UTC))
}

// FirstDate and LastDate are the inclusive bounds as YYYY-MM-DD.
func (m Month) FirstDate() string { return m.First().Format(constants.DateFormat) }
func (m Month) LastDate() string  { return m.Last().Format(constants.DateFormat) }

// Date returns the YYYY-MM-DD string of day d of the month.
func (m Month) Date(d int) string {
	return time.Date(m.Year, m.Month, d, 0, 0, 0, 0, time.UTC).Format(constants.DateFormat)
}

// Contains reports whether the YYYY-MM-DD date falls in m.
func (m Month) Contains(date string) bool {
	return date >= m.FirstDate() && date <= m.LastDate() && len(date) == len(constants.DateFormat)
}

func (m Month) String() string {
	return m.First().Format(constants.MonthFormat)
}

// Title is the human heading, e.g. "May 2024".
func (m Month) Title() string {
	return m.First().Format("January 2006")
}
