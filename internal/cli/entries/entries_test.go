package entries

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/julianstephens/lifecal/internal/cli/clitest"
)

const may25 = `{"_id":"e1","date":"2024-05-25T00:00:00.000Z","meetings":[{"title":"Client Presentation","time":"10:00"}],"tasks":[],"mood":"productive","journalNotes":"Went well."}`

type recorded struct {
	method string
	path   string
	query  string
	body   map[string]any
}

// fakeBackend answers entry queries from a map keyed by date and records writes.
func fakeBackend(byDate map[string]string, calls *[]recorded) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			json.Unmarshal(b, &rec.body)
		}
		*calls = append(*calls, rec)

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/entries":
			q := r.URL.Query()
			if q.Get("endDate") != "" {
				var docs []string
				for _, doc := range byDate {
					docs = append(docs, doc)
				}
				w.Write([]byte("[" + strings.Join(docs, ",") + "]"))
				return
			}
			if doc, ok := byDate[q.Get("startDate")]; ok {
				w.Write([]byte("[" + doc + "]"))
				return
			}
			w.Write([]byte(`[]`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/entries/e1":
			w.Write([]byte(may25))
		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"_id":"new","date":"2024-05-24","meetings":[],"tasks":[]}`))
		case r.Method == http.MethodPut:
			w.Write([]byte(may25))
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}
}

func lastWrite(calls []recorded) recorded {
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].method != http.MethodGet {
			return calls[i]
		}
	}
	return recorded{}
}

func TestEntryShowToday(t *testing.T) {
	var calls []recorded
	env := clitest.SignedIn(t, fakeBackend(map[string]string{"2024-05-25": may25}, &calls))

	if err := (&EntryTodayCmd{}).Run(env.Context); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	out := env.Buf.String()
	for _, want := range []string{"Entry for 2024-05-25", "productive", "10:00 Client Presentation", "Went well."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEntryShowMissing(t *testing.T) {
	var calls []recorded
	env := clitest.SignedIn(t, fakeBackend(nil, &calls))

	if err := (&EntryShowCmd{Date: "2024-05-20"}).Run(env.Context); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !strings.Contains(env.Buf.String(), "No entry for 2024-05-20") {
		t.Errorf("output = %q", env.Buf.String())
	}
}

func TestEntryShowByID(t *testing.T) {
	var calls []recorded
	env := clitest.SignedIn(t, fakeBackend(nil, &calls))

	if err := (&EntryShowCmd{Date: "e1"}).Run(env.Context); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !strings.Contains(env.Buf.String(), "Entry for 2024-05-25") {
		t.Errorf("output = %q", env.Buf.String())
	}

	err := (&EntryShowCmd{Date: "nope"}).Run(env.Context)
	if err == nil || !strings.Contains(err.Error(), "neither a date") {
		t.Errorf("Run() error = %v", err)
	}
}

func TestEntryAdd(t *testing.T) {
	tests := []struct {
		name      string
		cmd       EntryAddCmd
		wantErr   string
		wantWrite bool
	}{
		{
			name:      "creates entry and drops blank rows",
			cmd:       EntryAddCmd{Date: "2024-05-24", EntryFlags: EntryFlags{Meeting: []string{"09:00 Standup", "  "}, Task: []string{"Ship | https://example.com"}}},
			wantWrite: true,
		},
		{
			name:    "future date is refused",
			cmd:     EntryAddCmd{Date: "2024-05-26"},
			wantErr: "future",
		},
		{
			name:    "existing entry is refused",
			cmd:     EntryAddCmd{Date: "2024-05-25"},
			wantErr: "already exists",
		},
		{
			name:    "invalid mood is rejected before saving",
			cmd:     EntryAddCmd{Date: "2024-05-24", EntryFlags: EntryFlags{Mood: strPtr("ecstatic")}},
			wantErr: "mood",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []recorded
			env := clitest.SignedIn(t, fakeBackend(map[string]string{"2024-05-25": may25}, &calls))

			err := tt.cmd.Run(env.Context)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Run() error = %v, want containing %q", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Run() failed: %v", err)
			}

			w := lastWrite(calls)
			if (w.method == http.MethodPost) != tt.wantWrite {
				t.Fatalf("write = %+v, wantWrite %v", w, tt.wantWrite)
			}
			if !tt.wantWrite {
				return
			}
			meetings, _ := w.body["meetings"].([]any)
			if len(meetings) != 1 {
				t.Errorf("meetings = %v, want 1 row", w.body["meetings"])
			}
			if _, ok := w.body["summary"]; ok {
				t.Error("summary must never be sent")
			}
		})
	}
}

func TestEntryEditReplacesOnlyGivenFields(t *testing.T) {
	var calls []recorded
	env := clitest.SignedIn(t, fakeBackend(map[string]string{"2024-05-25": may25}, &calls))

	cmd := &EntryEditCmd{Date: "today", EntryFlags: EntryFlags{Mood: strPtr("Calm")}}
	if err := cmd.Run(env.Context); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	w := lastWrite(calls)
	if w.method != http.MethodPut || w.path != "/api/entries/e1" {
		t.Fatalf("write = %s %s, want PUT /api/entries/e1", w.method, w.path)
	}
	if w.body["mood"] != "calm" {
		t.Errorf("mood = %v, want calm", w.body["mood"])
	}
	if w.body["journalNotes"] != "Went well." {
		t.Errorf("journalNotes = %v, want unchanged", w.body["journalNotes"])
	}
	meetings, _ := w.body["meetings"].([]any)
	if len(meetings) != 1 {
		t.Errorf("meetings = %v, want unchanged", w.body["meetings"])
	}
}

func TestEntryEditKeepsStoredRows(t *testing.T) {
	const may10 = `{"_id":"e10","date":"2024-05-10","meetings":[{"time":"2:30 PM","title":"Sync"},{"title":"Plan | review","notes":"line one\nline two"}],"tasks":[{"caption":"Fix a | b","url":"https://example.com"}],"mood":"happy"}`
	var calls []recorded
	env := clitest.SignedIn(t, fakeBackend(map[string]string{"2024-05-10": may10}, &calls))

	cmd := &EntryEditCmd{Date: "2024-05-10", EntryFlags: EntryFlags{Mood: strPtr("calm")}}
	if err := cmd.Run(env.Context); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	w := lastWrite(calls)
	if w.method != http.MethodPut || w.path != "/api/entries/e10" {
		t.Fatalf("write = %s %s", w.method, w.path)
	}
	meetings, _ := w.body["meetings"].([]any)
	if len(meetings) != 2 {
		t.Fatalf("meetings = %v", w.body["meetings"])
	}
	first, _ := meetings[0].(map[string]any)
	if first["time"] != "2:30 PM" || first["title"] != "Sync" {
		t.Errorf("first meeting = %v, want time 2:30 PM and title Sync", first)
	}
	second, _ := meetings[1].(map[string]any)
	if second["title"] != "Plan | review" || second["notes"] != "line one\nline two" {
		t.Errorf("second meeting = %v", second)
	}
	tasks, _ := w.body["tasks"].([]any)
	task, _ := tasks[0].(map[string]any)
	if len(tasks) != 1 || task["caption"] != "Fix a | b" {
		t.Errorf("tasks = %v", w.body["tasks"])
	}
	if w.body["mood"] != "calm" {
		t.Errorf("mood = %v", w.body["mood"])
	}
}

func TestEntryEditNeedsChanges(t *testing.T) {
	var calls []recorded
	env := clitest.SignedIn(t, fakeBackend(nil, &calls))
	if err := (&EntryEditCmd{Date: "today"}).Run(env.Context); err == nil {
		t.Error("expected an error when no flags are given")
	}
}

func TestEntryDelete(t *testing.T) {
	var calls []recorded
	env := clitest.SignedIn(t, fakeBackend(map[string]string{"2024-05-25": may25}, &calls))

	if err := (&EntryDeleteCmd{Date: "2024-05-25"}).Run(env.Context); err == nil {
		t.Fatal("expected delete without --yes to need a prompt")
	}
	if w := lastWrite(calls); w.method != "" {
		t.Fatalf("nothing should be deleted without confirmation, got %+v", w)
	}

	if err := (&EntryDeleteCmd{Date: "2024-05-25", Yes: true}).Run(env.Context); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if w := lastWrite(calls); w.method != http.MethodDelete || w.path != "/api/entries/e1" {
		t.Errorf("write = %s %s", w.method, w.path)
	}
}

func TestCalendarRendersMonth(t *testing.T) {
	var calls []recorded
	env := clitest.SignedIn(t, fakeBackend(map[string]string{"2024-05-25": may25}, &calls))

	if err := (&CalendarCmd{}).Run(env.Context); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	out := env.Buf.String()
	if !strings.Contains(out, "May 2024") {
		t.Errorf("output missing month title:\n%s", out)
	}
	if !strings.Contains(out, "1 entries this month") {
		t.Errorf("output missing entry count:\n%s", out)
	}
	if calls[0].query != "endDate=2024-05-31&startDate=2024-05-01" {
		t.Errorf("query = %q", calls[0].query)
	}
}

func TestCalendarFutureMonthSkipsFetch(t *testing.T) {
	var calls []recorded
	env := clitest.SignedIn(t, fakeBackend(nil, &calls))

	if err := (&CalendarCmd{Month: "2024-07"}).Run(env.Context); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if len(calls) != 0 {
		t.Errorf("future month issued %d requests", len(calls))
	}
}

func strPtr(s string) *string { return &s }
