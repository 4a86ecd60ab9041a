// Package entryform holds the editable state of an entry and turns it into a
// save payload. Meetings and tasks are edited as one row per line:
//
//	meetings: HH:MM Title | notes
//	tasks:    Caption | https://link
//
// Entirely blank rows are dropped before saving; partially filled rows are kept.
package entryform

import (
	"strings"

	"github.com/julianstephens/lifecal/internal/models"
	"github.com/julianstephens/lifecal/internal/validation"
)

const fieldSep = "|"

// FormModel is bound to the entry form fields.
type FormModel struct {
	Date     string
	Meetings string
	Tasks    string
	Mood     string
	Notes    string

	// Lists loaded by FromEntry with their rendered text. While the text is
	// unchanged the stored rows are saved as-is instead of being re-parsed.
	loaded         bool
	loadedMeetings []models.Meeting
	loadedTasks    []models.Task
	meetingsText   string
	tasksText      string
}

// New returns an empty form for date.
func New(date string) *FormModel {
	return &FormModel{Date: date}
}

// FromEntry pre-fills a form with an existing entry.
func FromEntry(e models.Entry) *FormModel {
	meetings := make([]string, 0, len(e.Meetings))
	for _, m := range e.Meetings {
		meetings = append(meetings, FormatMeeting(m))
	}
	tasks := make([]string, 0, len(e.Tasks))
	for _, t := range e.Tasks {
		tasks = append(tasks, FormatTask(t))
	}
	f := &FormModel{
		Date:     e.Date,
		Meetings: strings.Join(meetings, "\n"),
		Tasks:    strings.Join(tasks, "\n"),
		Mood:     string(e.Mood),
		Notes:    e.JournalNotes,

		loaded:         true,
		loadedMeetings: e.Meetings,
		loadedTasks:    e.Tasks,
	}
	f.meetingsText, f.tasksText = f.Meetings, f.Tasks
	return f
}

// MeetingsChanged reports whether the meeting rows differ from what FromEntry loaded.
func (f *FormModel) MeetingsChanged() bool {
	return !f.loaded || f.Meetings != f.meetingsText
}

// TasksChanged reports whether the task rows differ from what FromEntry loaded.
func (f *FormModel) TasksChanged() bool {
	return !f.loaded || f.Tasks != f.tasksText
}

// ParseMeeting reads "HH:MM Title | notes". The leading token is taken as the
// time when it starts with a digit and contains a colon.
func ParseMeeting(line string) models.Meeting {
	head, notes, _ := strings.Cut(line, fieldSep)
	head = strings.TrimSpace(head)

	var m models.Meeting
	if first, rest, _ := strings.Cut(head, " "); looksLikeTime(first) {
		m.Time = first
		m.Title = strings.TrimSpace(rest)
	} else {
		m.Title = head
	}
	m.Notes = strings.TrimSpace(notes)
	return m
}

func looksLikeTime(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9' && strings.Contains(s, ":")
}

// FormatMeeting is the inverse of ParseMeeting.
func FormatMeeting(m models.Meeting) string {
	line := strings.TrimSpace(strings.Join([]string{m.Time, m.Title}, " "))
	if m.Notes != "" {
		line += " " + fieldSep + " " + m.Notes
	}
	return line
}

// ParseTask reads "Caption | url".
func ParseTask(line string) models.Task {
	caption, link, _ := strings.Cut(line, fieldSep)
	return models.Task{Caption: strings.TrimSpace(caption), URL: strings.TrimSpace(link)}
}

// FormatTask is the inverse of ParseTask.
func FormatTask(t models.Task) string {
	if t.URL == "" {
		return t.Caption
	}
	return t.Caption + " " + fieldSep + " " + t.URL
}

func meetingBlank(m models.Meeting) bool {
	return m.Title == "" && m.Time == "" && m.Notes == ""
}

func taskBlank(t models.Task) bool {
	return t.Caption == "" && t.URL == ""
}

// Input assembles the payload without validating it. Arrays are never nil.
func (f *FormModel) Input() models.EntryInput {
	in := models.EntryInput{
		Date:         strings.TrimSpace(f.Date),
		Meetings:     []models.Meeting{},
		Tasks:        []models.Task{},
		Mood:         models.Mood(strings.ToLower(strings.TrimSpace(f.Mood))),
		JournalNotes: strings.TrimSpace(f.Notes),
	}
	if f.MeetingsChanged() {
		for _, line := range strings.Split(f.Meetings, "\n") {
			if m := ParseMeeting(line); !meetingBlank(m) {
				in.Meetings = append(in.Meetings, m)
			}
		}
	} else {
		in.Meetings = append(in.Meetings, f.loadedMeetings...)
	}
	if f.TasksChanged() {
		for _, line := range strings.Split(f.Tasks, "\n") {
			if t := ParseTask(line); !taskBlank(t) {
				in.Tasks = append(in.Tasks, t)
			}
		}
	} else {
		in.Tasks = append(in.Tasks, f.loadedTasks...)
	}
	return in
}

// Validate checks the form as it would be submitted. Rows kept unchanged from
// the stored entry are not checked again.
func (f *FormModel) Validate() validation.Result {
	check := f.Input()
	if !f.MeetingsChanged() {
		check.Meetings = nil
	}
	if !f.TasksChanged() {
		check.Tasks = nil
	}
	return validation.New().ValidateEntry(check)
}

// Build validates and returns the payload, or a *validation.Error.
func (f *FormModel) Build() (models.EntryInput, error) {
	result := f.Validate()
	if err := result.Err(); err != nil {
		return models.EntryInput{}, err
	}
	return f.Input(), nil
}

// ValidateMeetingsText and ValidateTasksText give inline field feedback.
func ValidateMeetingsText(s string) error {
	f := FormModel{Date: "2000-01-01", Meetings: s}
	r := f.Validate()
	return r.Err()
}

func ValidateTasksText(s string) error {
	f := FormModel{Date: "2000-01-01", Tasks: s}
	r := f.Validate()
	return r.Err()
}

// MeetingsField validates the meetings field of this form. Text equal to the
// stored rows is accepted as is.
func (f *FormModel) MeetingsField(s string) error {
	if f.loaded && s == f.meetingsText {
		return nil
	}
	return ValidateMeetingsText(s)
}

// TasksField is MeetingsField for the tasks field.
func (f *FormModel) TasksField(s string) error {
	if f.loaded && s == f.tasksText {
		return nil
	}
	return ValidateTasksText(s)
}
