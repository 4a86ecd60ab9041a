package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/lifecal/internal/models"
)

func TestValidateEntry(t *testing.T) {
	validator := New()

	tests := []struct {
		name      string
		in        models.EntryInput
		wantTypes []ProblemType
	}{
		{
			name: "empty arrays and blank mood accepted",
			in:   models.EntryInput{Date: "2024-05-25", Meetings: []models.Meeting{}, Tasks: []models.Task{}},
		},
		{
			name: "complete entry",
			in: models.EntryInput{
				Date:     "2024-05-25",
				Meetings: []models.Meeting{{Title: "Client Presentation", Time: "10:00"}},
				Tasks:    []models.Task{{Caption: "PR", URL: "https://github.com/x/y/pull/1"}},
				Mood:     models.MoodProductive,
			},
		},
		{
			name: "meeting without time is fine",
			in:   models.EntryInput{Date: "2024-05-25", Meetings: []models.Meeting{{Title: "Lunch"}}},
		},
		{
			name:      "bad date",
			in:        models.EntryInput{Date: "05/25/2024"},
			wantTypes: []ProblemType{ProblemInvalidDate},
		},
		{
			name:      "bad time",
			in:        models.EntryInput{Date: "2024-05-25", Meetings: []models.Meeting{{Title: "x", Time: "25:00"}}},
			wantTypes: []ProblemType{ProblemInvalidTime},
		},
		{
			name: "relative and non-http urls",
			in: models.EntryInput{Date: "2024-05-25", Tasks: []models.Task{
				{Caption: "a", URL: "/relative"},
				{Caption: "b", URL: "ftp://example.com"},
			}},
			wantTypes: []ProblemType{ProblemInvalidURL, ProblemInvalidURL},
		},
		{
			name:      "unknown mood",
			in:        models.EntryInput{Date: "2024-05-25", Mood: "ecstatic"},
			wantTypes: []ProblemType{ProblemInvalidMood},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.ValidateEntry(tt.in)
			if len(result.Problems) != len(tt.wantTypes) {
				t.Fatalf("got %d problems, want %d: %s", len(result.Problems), len(tt.wantTypes), result.FormatReport())
			}
			for i, want := range tt.wantTypes {
				if result.Problems[i].Type != want {
					t.Errorf("problem %d type = %s, want %s", i, result.Problems[i].Type, want)
				}
			}
		})
	}
}

func TestValidateStory(t *testing.T) {
	validator := New()

	ok := validator.ValidateStory(models.StoryRequest{StartDate: "2024-05-01", EndDate: "2024-05-01", PeriodDescription: "work"})
	if ok.HasProblems() {
		t.Errorf("same-day range should be valid: %s", ok.FormatReport())
	}

	bad := validator.ValidateStory(models.StoryRequest{StartDate: "2024-05-10", EndDate: "2024-05-01", PeriodDescription: "  "})
	if bad.Field("prompt") == "" {
		t.Error("blank prompt not reported")
	}
	if !strings.Contains(bad.Field("endDate"), "after") {
		t.Errorf("range problem = %q", bad.Field("endDate"))
	}
}

func TestResultErr(t *testing.T) {
	var empty Result
	if empty.Err() != nil {
		t.Error("empty result should have nil Err()")
	}

	r := New().ValidateEntry(models.EntryInput{Date: "nope"})
	err := r.Err()
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("Err() = %v, want *Error", err)
	}
	if !strings.Contains(verr.UserMessage(), "YYYY-MM-DD") {
		t.Errorf("UserMessage() = %q", verr.UserMessage())
	}
}

func TestValidURL(t *testing.T) {
	cases := map[string]bool{
		"https://example.com":       true,
		"http://localhost:3000/api": true,
		"example.com":               false,
		"https://":                  false,
		"mailto:a@b.c":              false,
	}
	for in, want := range cases {
		if got := ValidURL(in); got != want {
			t.Errorf("ValidURL(%q) = %v, want %v", in, got, want)
		}
	}
}
