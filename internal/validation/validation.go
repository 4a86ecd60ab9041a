package validation

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/julianstephens/lifecal/internal/models"
	"github.com/julianstephens/lifecal/internal/utils"
)

// ProblemType classifies a validation failure
type ProblemType string

const (
	ProblemInvalidDate  ProblemType = "invalid_date"
	ProblemInvalidTime  ProblemType = "invalid_time"
	ProblemInvalidURL   ProblemType = "invalid_url"
	ProblemInvalidMood  ProblemType = "invalid_mood"
	ProblemInvalidRange ProblemType = "invalid_range"
	ProblemMissingField ProblemType = "missing_field"
)

// Problem is one failed check. Field names the form field it belongs to.
type Problem struct {
	Type        ProblemType
	Field       string
	Description string
}

// Result contains all detected problems
type Result struct {
	Problems []Problem
}

// HasProblems returns true if submission should be blocked
func (r *Result) HasProblems() bool {
	return len(r.Problems) > 0
}

// Field returns the first message recorded for field, or "".
func (r *Result) Field(field string) string {
	for _, p := range r.Problems {
		if p.Field == field {
			return p.Description
		}
	}
	return ""
}

// FormatReport returns a human-readable report of all problems
func (r *Result) FormatReport() string {
	if !r.HasProblems() {
		return "No problems detected."
	}
	var b strings.Builder
	b.WriteString("Please fix the following:\n")
	for _, p := range r.Problems {
		fmt.Fprintf(&b, "- %s\n", p.Description)
	}
	return b.String()
}

// Err returns nil when valid, otherwise an error carrying the report.
func (r *Result) Err() error {
	if !r.HasProblems() {
		return nil
	}
	return &Error{Result: *r}
}

func (r *Result) add(t ProblemType, field, format string, args ...any) {
	r.Problems = append(r.Problems, Problem{Type: t, Field: field, Description: fmt.Sprintf(format, args...)})
}

// Error wraps a failed Result.
type Error struct {
	Result Result
}

func (e *Error) Error() string {
	return strings.TrimSpace(e.Result.FormatReport())
}

// UserMessage lets the error formatter show the report as is.
func (e *Error) UserMessage() string {
	return e.Error()
}

// Validator checks user input before it is sent to the backend
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateEntry checks an entry payload. Nothing is required beyond a date;
// optional fields are checked only when present.
func (v *Validator) ValidateEntry(in models.EntryInput) Result {
	var r Result

	if _, err := utils.ParseDate(in.Date); err != nil {
		r.add(ProblemInvalidDate, "date", "Date %q must be YYYY-MM-DD", in.Date)
	}

	for i, m := range in.Meetings {
		if m.Time != "" && !utils.ValidateTimeFormat(m.Time) {
			r.add(ProblemInvalidTime, "meetings", "Meeting %d: time %q must be HH:MM", i+1, m.Time)
		}
	}

	for i, t := range in.Tasks {
		if t.URL != "" && !ValidURL(t.URL) {
			r.add(ProblemInvalidURL, "tasks", "Task %d: %q is not an absolute http(s) URL", i+1, t.URL)
		}
	}

	if in.Mood != "" && !in.Mood.Valid() {
		r.add(ProblemInvalidMood, "mood", "Unknown mood %q", in.Mood)
	}

	return r
}

// ValidateStory checks a story generation request.
func (v *Validator) ValidateStory(req models.StoryRequest) Result {
	var r Result

	if strings.TrimSpace(req.PeriodDescription) == "" {
		r.add(ProblemMissingField, "prompt", "Describe what the story should focus on")
	}
	start, errStart := utils.ParseDate(req.StartDate)
	if errStart != nil {
		r.add(ProblemInvalidDate, "startDate", "Start date %q must be YYYY-MM-DD", req.StartDate)
	}
	end, errEnd := utils.ParseDate(req.EndDate)
	if errEnd != nil {
		r.add(ProblemInvalidDate, "endDate", "End date %q must be YYYY-MM-DD", req.EndDate)
	}
	if errStart == nil && errEnd == nil && start.After(end) {
		r.add(ProblemInvalidRange, "endDate", "Start date %s is after end date %s", req.StartDate, req.EndDate)
	}

	return r
}

// ValidURL reports whether s is an absolute http or https URL with a host.
func ValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
