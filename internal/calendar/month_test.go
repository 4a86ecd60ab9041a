package calendar

import (
	"testing"
	"time"
)

// gregorianDays is an independent reference for month lengths.
func gregorianDays(year int, month time.Month) int {
	switch month {
	case time.February:
		if (year%4 == 0 && year%100 != 0) || year%400 == 0 {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		month Month
		want  int
	}{
		{Month{2024, time.February}, 29},
		{Month{2023, time.February}, 28},
		{Month{2000, time.February}, 29},
		{Month{1900, time.February}, 28},
		{Month{2024, time.April}, 30},
		{Month{2024, time.December}, 31},
	}
	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			if got := tt.month.DaysIn(); got != tt.want {
				t.Errorf("DaysIn() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCellsCountForAllMonths(t *testing.T) {
	for year := 1900; year <= 2100; year++ {
		for mo := time.January; mo <= time.December; mo++ {
			m := Month{year, mo}
			if got, want := m.DaysIn(), gregorianDays(year, mo); got != want {
				t.Fatalf("%s: DaysIn() = %d, want %d", m, got, want)
			}

			cells := Cells(m)
			if len(cells) != m.LeadingBlanks()+m.DaysIn() {
				t.Fatalf("%s: %d cells, want %d blanks + %d days", m, len(cells), m.LeadingBlanks(), m.DaysIn())
			}
			for i := 0; i < m.LeadingBlanks(); i++ {
				if !cells[i].Blank {
					t.Fatalf("%s: cell %d should be blank", m, i)
				}
			}
			first := cells[m.LeadingBlanks()]
			if first.Blank || first.Day != 1 || first.Date != m.FirstDate() {
				t.Fatalf("%s: first day cell = %+v", m, first)
			}
			if last := cells[len(cells)-1]; last.Date != m.LastDate() {
				t.Fatalf("%s: last cell date = %s, want %s", m, last.Date, m.LastDate())
			}
		}
	}
}

func TestLeadingBlanks(t *testing.T) {
	tests := []struct {
		month Month
		want  int
	}{
		{Month{2024, time.May}, 3},       // Wednesday
		{Month{2024, time.September}, 0}, // Sunday
		{Month{2024, time.June}, 6},      // Saturday
		{Month{2023, time.February}, 3},  // Wednesday
	}
	for _, tt := range tests {
		if got := tt.month.LeadingBlanks(); got != tt.want {
			t.Errorf("%s LeadingBlanks() = %d, want %d", tt.month, got, tt.want)
		}
	}
}

func TestPrevNextWrapYears(t *testing.T) {
	jan := Month{2024, time.January}
	if got := jan.Prev(); got != (Month{2023, time.December}) {
		t.Errorf("Prev() = %v", got)
	}
	dec := Month{2024, time.December}
	if got := dec.Next(); got != (Month{2025, time.January}) {
		t.Errorf("Next() = %v", got)
	}
	if got := dec.Next().Prev(); got != dec {
		t.Errorf("Next().Prev() = %v", got)
	}
}

func TestMonthBoundsAndContains(t *testing.T) {
	m := Month{2024, time.February}
	if m.FirstDate() != "2024-02-01" || m.LastDate() != "2024-02-29" {
		t.Errorf("bounds = %s..%s", m.FirstDate(), m.LastDate())
	}
	cases := map[string]bool{
		"2024-02-01": true,
		"2024-02-29": true,
		"2024-03-01": false,
		"2024-01-31": false,
		"2024-02":    false,
	}
	for date, want := range cases {
		if got := m.Contains(date); got != want {
			t.Errorf("Contains(%q) = %v, want %v", date, got, want)
		}
	}
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-05")
	if err != nil || m != (Month{2024, time.May}) {
		t.Errorf("ParseMonth() = %v, %v", m, err)
	}
	if m.Title() != "May 2024" {
		t.Errorf("Title() = %q", m.Title())
	}
	for _, bad := range []string{"", "2024-13", "May 2024", "2024-5-1"} {
		if _, err := ParseMonth(bad); err == nil {
			t.Errorf("ParseMonth(%q) should fail", bad)
		}
	}
}
