package entryform

import (
	"errors"
	"testing"

	"github.com/julianstephens/lifecal/internal/models"
	"github.com/julianstephens/lifecal/internal/validation"
)

func TestParseMeeting(t *testing.T) {
	tests := []struct {
		line string
		want models.Meeting
	}{
		{"10:00 Client Presentation", models.Meeting{Time: "10:00", Title: "Client Presentation"}},
		{"09:30 Standup | short one", models.Meeting{Time: "09:30", Title: "Standup", Notes: "short one"}},
		{"Lunch with Sam", models.Meeting{Title: "Lunch with Sam"}},
		{"  | only notes  ", models.Meeting{Notes: "only notes"}},
		{"14:00", models.Meeting{Time: "14:00"}},
		{"", models.Meeting{}},
		{"1:1 with manager", models.Meeting{Time: "1:1", Title: "with manager"}},
	}
	for _, tt := range tests {
		if got := ParseMeeting(tt.line); got != tt.want {
			t.Errorf("ParseMeeting(%q) = %+v, want %+v", tt.line, got, tt.want)
		}
	}
}

func TestParseTask(t *testing.T) {
	tests := []struct {
		line string
		want models.Task
	}{
		{"Ship release | https://example.com/r/1", models.Task{Caption: "Ship release", URL: "https://example.com/r/1"}},
		{"Write docs", models.Task{Caption: "Write docs"}},
		{"| https://only.link", models.Task{URL: "https://only.link"}},
	}
	for _, tt := range tests {
		if got := ParseTask(tt.line); got != tt.want {
			t.Errorf("ParseTask(%q) = %+v, want %+v", tt.line, got, tt.want)
		}
	}
}

func TestFromEntryRoundTripsThroughInput(t *testing.T) {
	e := models.Entry{
		ID:   "e1",
		Date: "2024-05-25",
		Meetings: []models.Meeting{
			{Time: "10:00", Title: "Client Presentation", Notes: "went well"},
			{Title: "Coffee"},
		},
		Tasks:        []models.Task{{Caption: "Ship", URL: "https://example.com"}, {Caption: "Rest"}},
		Mood:         models.MoodProductive,
		JournalNotes: "Good day.",
		Summary:      "server side",
	}

	in := FromEntry(e).Input()
	want := e.Input()
	if in.Date != want.Date || in.Mood != want.Mood || in.JournalNotes != want.JournalNotes {
		t.Errorf("Input() = %+v, want %+v", in, want)
	}
	if len(in.Meetings) != 2 || in.Meetings[0] != want.Meetings[0] || in.Meetings[1] != want.Meetings[1] {
		t.Errorf("Meetings = %+v", in.Meetings)
	}
	if len(in.Tasks) != 2 || in.Tasks[0] != want.Tasks[0] || in.Tasks[1] != want.Tasks[1] {
		t.Errorf("Tasks = %+v", in.Tasks)
	}
}

func TestUntouchedListsAreSavedVerbatim(t *testing.T) {
	e := models.Entry{
		ID:   "e1",
		Date: "2024-05-10",
		Meetings: []models.Meeting{
			{Time: "2:30 PM", Title: "Sync"},
			{Title: "Plan | review", Notes: "line one\nline two"},
		},
		Tasks: []models.Task{{Caption: "Fix a | b", URL: "https://example.com"}},
	}

	f := FromEntry(e)
	f.Mood = "calm"
	if f.MeetingsChanged() || f.TasksChanged() {
		t.Fatal("lists reported as changed without edits")
	}
	in, err := f.Build()
	if err != nil {
		t.Fatalf("Build() failed on stored rows: %v", err)
	}
	if len(in.Meetings) != 2 || in.Meetings[0] != e.Meetings[0] || in.Meetings[1] != e.Meetings[1] {
		t.Errorf("Meetings = %+v, want %+v", in.Meetings, e.Meetings)
	}
	if len(in.Tasks) != 1 || in.Tasks[0] != e.Tasks[0] {
		t.Errorf("Tasks = %+v, want %+v", in.Tasks, e.Tasks)
	}

	f.Meetings = "25:99 Sync"
	if !f.MeetingsChanged() {
		t.Fatal("edited meetings not reported as changed")
	}
	if _, err := f.Build(); err == nil {
		t.Error("edited meeting rows should be validated")
	}
	if f.TasksChanged() {
		t.Error("tasks reported as changed after editing meetings")
	}

	stored := FromEntry(e)
	if err := stored.MeetingsField(stored.Meetings); err != nil {
		t.Errorf("MeetingsField() rejected stored rows: %v", err)
	}
	if err := stored.MeetingsField("25:99 Sync"); err == nil {
		t.Error("MeetingsField() accepted an edited invalid row")
	}
	if err := stored.TasksField("x | ftp://nope"); err == nil {
		t.Error("TasksField() accepted an invalid URL")
	}
}

func TestBlankRowsDropped(t *testing.T) {
	f := &FormModel{
		Date:     "2024-05-25",
		Meetings: "\n10:00 Standup\n   \n|\n",
		Tasks:    "\n\nReview PR\n",
	}
	in, err := f.Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(in.Meetings) != 1 || in.Meetings[0].Title != "Standup" {
		t.Errorf("Meetings = %+v", in.Meetings)
	}
	if len(in.Tasks) != 1 || in.Tasks[0].Caption != "Review PR" {
		t.Errorf("Tasks = %+v", in.Tasks)
	}
}

func TestEmptyFormIsSubmittable(t *testing.T) {
	in, err := New("2024-05-25").Build()
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	if in.Meetings == nil || in.Tasks == nil {
		t.Error("arrays must be empty, not nil")
	}
	if in.Mood != "" {
		t.Errorf("Mood = %q", in.Mood)
	}
}

func TestBuildBlocksInvalidInput(t *testing.T) {
	f := &FormModel{
		Date:     "2024-05-25",
		Meetings: "9am Standup",
		Tasks:    "Link | not-a-url",
		Mood:     "Ecstatic",
	}
	// "9am" does not look like a time, so it stays part of the title
	if m := ParseMeeting(f.Meetings); m.Time != "" {
		t.Fatalf("unexpected time %q", m.Time)
	}

	_, err := f.Build()
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("Build() error = %v, want *validation.Error", err)
	}
	r := verr.Result
	if r.Field("tasks") == "" || r.Field("mood") == "" {
		t.Errorf("problems = %+v", r.Problems)
	}
	// entered data is untouched by a failed build
	if f.Tasks != "Link | not-a-url" || f.Mood != "Ecstatic" {
		t.Error("Build() modified the form")
	}
}

func TestInlineValidators(t *testing.T) {
	if err := ValidateMeetingsText("10:00 ok\n25:99 bad"); err == nil {
		t.Error("invalid meeting time not reported")
	}
	if err := ValidateMeetingsText("10:00 ok\nno time"); err != nil {
		t.Errorf("ValidateMeetingsText() = %v", err)
	}
	if err := ValidateTasksText("x | ftp://nope"); err == nil {
		t.Error("invalid task url not reported")
	}
}

func TestMoodIsNormalized(t *testing.T) {
	in, err := (&FormModel{Date: "2024-05-25", Mood: " Calm "}).Build()
	if err != nil {
		t.Fatal(err)
	}
	if in.Mood != models.MoodCalm {
		t.Errorf("Mood = %q", in.Mood)
	}
}
