package calendar

import (
	"context"
	"time"

	"github.com/julianstephens/lifecal/internal/constants"
	"github.com/julianstephens/lifecal/internal/logger"
	"github.com/julianstephens/lifecal/internal/models"
)

// EntryLister fetches the entries dated within [start, end].
type EntryLister interface {
	ListEntries(ctx context.Context, start, end string) ([]models.Entry, error)
}

// Action is what a click on a day opens.
type Action int

const (
	ActionNone Action = iota
	ActionView
	ActionCreate
)

// Cell is one slot in the grid. Blank cells pad the first week.
type Cell struct {
	Blank    bool
	Day      int
	Date     string
	Status   Status
	Badges   Badges
	Selected bool
}

// Cells lays out m as leading blanks followed by one cell per day. Status and
// badges are left zero; Grid.Cells fills them in.
func Cells(m Month) []Cell {
	blanks := m.LeadingBlanks()
	days := m.DaysIn()
	cells := make([]Cell, 0, blanks+days)
	for i := 0; i < blanks; i++ {
		cells = append(cells, Cell{Blank: true})
	}
	for d := 1; d <= days; d++ {
		cells = append(cells, Cell{Day: d, Date: m.Date(d)})
	}
	return cells
}

// Grid is the stateful month view: which month is shown, the entries loaded
// for it, whether a load is in flight, and the selected day.
type Grid struct {
	now      func() time.Time
	month    Month
	entries  map[string]models.Entry
	loading  bool
	err      error
	selected string
}

// NewGrid starts on the month containing now(). now supplies "today" and should
// already be in the user's timezone.
func NewGrid(now func() time.Time) *Grid {
	if now == nil {
		now = time.Now
	}
	g := &Grid{now: now, entries: map[string]models.Entry{}}
	t := now()
	g.month = MonthOf(t)
	g.selected = t.Format(constants.DateFormat)
	return g
}

// Today is the current date as YYYY-MM-DD.
func (g *Grid) Today() string {
	return g.now().Format(constants.DateFormat)
}

func (g *Grid) Month() Month     { return g.month }
func (g *Grid) Loading() bool    { return g.loading }
func (g *Grid) Err() error       { return g.err }
func (g *Grid) Selected() string { return g.selected }

// Begin switches to m and resets its entries. It reports whether the caller
// must fetch: months starting after today are never queried.
func (g *Grid) Begin(m Month) bool {
	g.month = m
	g.entries = map[string]models.Entry{}
	g.err = nil
	if !m.Contains(g.selected) {
		g.selected = m.FirstDate()
		if m.Contains(g.Today()) {
			g.selected = g.Today()
		}
	}

	if m.FirstDate() > g.Today() {
		g.loading = false
		return false
	}
	g.loading = true
	return true
}

// Finish applies a fetch result for m. Results for a month that is no longer
// displayed, or that arrive when no load is pending, are dropped and Finish
// reports false. On error the month stays empty.
func (g *Grid) Finish(m Month, entries []models.Entry, err error) bool {
	if m != g.month || !g.loading {
		logger.Debug("Dropping stale month result", "month", m.String(), "showing", g.month.String())
		return false
	}
	g.loading = false
	g.entries = map[string]models.Entry{}
	if err != nil {
		g.err = err
		return true
	}
	for _, e := range entries {
		if m.Contains(e.Date) {
			g.entries[e.Date] = e
		}
	}
	return true
}

// LoadMonth shows year/month and synchronously fetches its entries from repo.
// Nothing is retried; on failure the returned error is also kept in Err.
func (g *Grid) LoadMonth(ctx context.Context, repo EntryLister, year int, month time.Month) error {
	m := MonthOf(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
	if !g.Begin(m) {
		return nil
	}
	entries, err := repo.ListEntries(ctx, m.FirstDate(), m.LastDate())
	g.Finish(m, entries, err)
	return err
}

// PrevMonth and NextMonth only compute the neighbouring month; the caller loads it.
func (g *Grid) PrevMonth() Month { return g.month.Prev() }
func (g *Grid) NextMonth() Month { return g.month.Next() }

// Entry returns the loaded entry for date.
func (g *Grid) Entry(date string) (models.Entry, bool) {
	e, ok := g.entries[date]
	return e, ok
}

// EntryCount is the number of entries loaded for the month.
func (g *Grid) EntryCount() int {
	return len(g.entries)
}

func (g *Grid) DayStatus(date string) Status {
	_, ok := g.entries[date]
	return StatusOf(date, g.Today(), ok)
}

// Click decides what selecting date opens. Future days and clicks during a
// load do nothing.
func (g *Grid) Click(date string) Action {
	if g.loading || !g.month.Contains(date) {
		return ActionNone
	}
	g.selected = date
	if g.DayStatus(date) == StatusFuture {
		return ActionNone
	}
	if _, ok := g.entries[date]; ok {
		return ActionView
	}
	return ActionCreate
}

// MoveSelection moves the selected day by delta days, clamped to the month.
func (g *Grid) MoveSelection(delta int) {
	day := 1
	if g.month.Contains(g.selected) {
		if t, err := time.Parse(constants.DateFormat, g.selected); err == nil {
			day = t.Day()
		}
	}
	day += delta
	if day < 1 {
		day = 1
	}
	if day > g.month.DaysIn() {
		day = g.month.DaysIn()
	}
	g.selected = g.month.Date(day)
}

// Cells returns the displayed month's cells with status and badges resolved.
func (g *Grid) Cells() []Cell {
	cells := Cells(g.month)
	today := g.Today()
	for i := range cells {
		c := &cells[i]
		if c.Blank {
			continue
		}
		var entry *models.Entry
		if e, ok := g.entries[c.Date]; ok {
			entry = &e
		}
		c.Status = StatusOf(c.Date, today, entry != nil)
		c.Badges = BadgesFor(entry)
		c.Selected = c.Date == g.selected
	}
	return cells
}
