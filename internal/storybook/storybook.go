// Package storybook assembles story generation requests and holds the story
// list shown to the user.
package storybook

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/lifecal/internal/constants"
	"github.com/julianstephens/lifecal/internal/models"
	"github.com/julianstephens/lifecal/internal/validation"
)

// Period is a preset date range ending today.
type Period string

const (
	PeriodLastWeek    Period = "last-week"
	PeriodLastMonth   Period = "last-month"
	PeriodLastQuarter Period = "last-quarter"
	PeriodLastYear    Period = "last-year"
	PeriodCustom      Period = "custom"
)

var Periods = []Period{PeriodLastWeek, PeriodLastMonth, PeriodLastQuarter, PeriodLastYear, PeriodCustom}

func (p Period) Label() string {
	switch p {
	case PeriodLastWeek:
		return "Last Week"
	case PeriodLastMonth:
		return "Last Month"
	case PeriodLastQuarter:
		return "Last Quarter"
	case PeriodLastYear:
		return "Last Year"
	case PeriodCustom:
		return "Custom Range"
	}
	return string(p)
}

func ParsePeriod(s string) (Period, error) {
	for _, p := range Periods {
		if string(p) == strings.ToLower(strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown period %q (want one of last-week, last-month, last-quarter, last-year, custom)", s)
}

// Range returns the inclusive YYYY-MM-DD bounds of p ending on today's date.
// Custom has no preset range.
func Range(p Period, today time.Time) (string, string, error) {
	var start time.Time
	switch p {
	case PeriodLastWeek:
		start = today.AddDate(0, 0, -7)
	case PeriodLastMonth:
		start = today.AddDate(0, -1, 0)
	case PeriodLastQuarter:
		start = today.AddDate(0, -3, 0)
	case PeriodLastYear:
		start = today.AddDate(-1, 0, 0)
	default:
		return "", "", fmt.Errorf("period %q has no preset range", p)
	}
	return start.Format(constants.DateFormat), today.Format(constants.DateFormat), nil
}

// DefaultTitle is used when the user leaves the title blank.
func DefaultTitle(start, end string) string {
	return fmt.Sprintf("My Story: %s - %s", start, end)
}

// FormModel is bound to the story creation form.
type FormModel struct {
	Period    string
	StartDate string
	EndDate   string
	Title     string
	Prompt    string
}

// Request resolves the form into a request. Preset periods override any
// explicit dates; the prompt travels as periodDescription.
func (f *FormModel) Request(today time.Time) (models.StoryRequest, error) {
	period := PeriodCustom
	if f.Period != "" {
		p, err := ParsePeriod(f.Period)
		if err != nil {
			return models.StoryRequest{}, err
		}
		period = p
	}

	start, end := strings.TrimSpace(f.StartDate), strings.TrimSpace(f.EndDate)
	if period != PeriodCustom {
		var err error
		if start, end, err = Range(period, today); err != nil {
			return models.StoryRequest{}, err
		}
	}

	prompt := strings.TrimSpace(f.Prompt)
	req := models.StoryRequest{
		Title:             strings.TrimSpace(f.Title),
		StartDate:         start,
		EndDate:           end,
		PeriodDescription: prompt,
		Prompt:            prompt,
	}
	if req.Title == "" {
		req.Title = DefaultTitle(start, end)
	}

	result := validation.New().ValidateStory(req)
	if err := result.Err(); err != nil {
		return models.StoryRequest{}, err
	}
	return req, nil
}

// Paragraphs splits story content on blank lines, including lines holding only
// whitespace. Lines inside a paragraph keep their line breaks.
func Paragraphs(content string) []string {
	var (
		out  []string
		para []string
	)
	flush := func() {
		if p := strings.TrimSpace(strings.Join(para, "\n")); p != "" {
			out = append(out, p)
		}
		para = para[:0]
	}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		para = append(para, line)
	}
	flush()
	return out
}

// WordCount counts whitespace separated words.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// Excerpt is the first paragraph cut to max runes.
func Excerpt(content string, max int) string {
	paras := Paragraphs(content)
	if len(paras) == 0 {
		return ""
	}
	r := []rune(paras[0])
	if len(r) <= max {
		return paras[0]
	}
	return strings.TrimSpace(string(r[:max])) + "…"
}
