package entrycard

import (
	"strings"
	"testing"

	"github.com/julianstephens/lifecal/internal/models"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		entry   models.Entry
		want    []string
		notWant []string
	}{
		{
			name:    "date only",
			entry:   models.Entry{Date: "2024-05-10"},
			want:    []string{"2024-05-10"},
			notWant: []string{"Meetings", "Tasks", "Journal", "mood:"},
		},
		{
			name: "full entry",
			entry: models.Entry{
				Date:         "2024-05-25",
				Mood:         models.MoodProductive,
				Meetings:     []models.Meeting{{Time: "10:00", Title: "Client Presentation", Notes: "went well"}},
				Tasks:        []models.Task{{Caption: "Ship", URL: "https://example.com"}},
				JournalNotes: "Good day.",
				Summary:      "Busy and productive.",
			},
			want: []string{"mood: productive", "10:00 Client Presentation", "went well", "Ship", "https://example.com", "Good day.", "Summary: Busy and productive."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Render(tt.entry)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("unexpected %q:\n%s", w, out)
				}
			}
		})
	}
}
