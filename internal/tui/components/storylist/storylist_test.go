package storylist

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/lifecal/internal/models"
	"github.com/julianstephens/lifecal/internal/storybook"
)

func TestRender(t *testing.T) {
	l := storybook.NewList()
	if out := Render(l, 80); !strings.Contains(out, "No stories yet") {
		t.Errorf("empty list:\n%s", out)
	}

	l.Set([]models.Story{{
		ID:        "s1",
		Title:     "A Good Week",
		Content:   "First paragraph here.\n\nSecond one.",
		StartDate: "2024-05-18",
		EndDate:   "2024-05-25",
		CreatedAt: time.Date(2024, 5, 25, 8, 0, 0, 0, time.UTC),
	}})

	collapsed := Render(l, 80)
	if !strings.Contains(collapsed, "A Good Week") || !strings.Contains(collapsed, "2024-05-18 → 2024-05-25 · 5 words") {
		t.Errorf("collapsed header:\n%s", collapsed)
	}
	if strings.Contains(collapsed, "Second one.") {
		t.Errorf("collapsed story shows more than its excerpt:\n%s", collapsed)
	}

	l.Toggle("s1")
	if expanded := Render(l, 80); !strings.Contains(expanded, "Second one.") {
		t.Errorf("expanded story missing paragraphs:\n%s", expanded)
	}
}
