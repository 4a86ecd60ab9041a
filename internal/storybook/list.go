package storybook

import (
	"sort"

	"github.com/julianstephens/lifecal/internal/modal"
	"github.com/julianstephens/lifecal/internal/models"
)

// List is the story list with per-story expansion, a cursor and the delete
// confirmation dialog.
type List struct {
	stories  []models.Story
	expanded map[string]bool
	cursor   int
	Dialog   modal.Machine
}

func NewList() *List {
	return &List{expanded: map[string]bool{}}
}

// Set replaces the stories, newest first.
func (l *List) Set(stories []models.Story) {
	l.stories = append([]models.Story(nil), stories...)
	sort.SliceStable(l.stories, func(i, j int) bool {
		return l.stories[i].CreatedAt.After(l.stories[j].CreatedAt)
	})
	l.clampCursor()
}

// Prepend adds a freshly generated story at the top and selects it.
func (l *List) Prepend(s models.Story) {
	l.stories = append([]models.Story{s}, l.stories...)
	l.cursor = 0
}

func (l *List) Remove(id string) {
	for i, s := range l.stories {
		if s.ID == id {
			l.stories = append(l.stories[:i], l.stories[i+1:]...)
			break
		}
	}
	delete(l.expanded, id)
	l.clampCursor()
}

func (l *List) Stories() []models.Story { return l.stories }
func (l *List) Len() int                { return len(l.stories) }
func (l *List) Cursor() int             { return l.cursor }

func (l *List) Move(delta int) {
	l.cursor += delta
	l.clampCursor()
}

func (l *List) clampCursor() {
	if l.cursor >= len(l.stories) {
		l.cursor = len(l.stories) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// Current is the story under the cursor.
func (l *List) Current() (models.Story, bool) {
	if len(l.stories) == 0 {
		return models.Story{}, false
	}
	return l.stories[l.cursor], true
}

// Toggle expands or collapses a story.
func (l *List) Toggle(id string) {
	l.expanded[id] = !l.expanded[id]
}

func (l *List) Expanded(id string) bool { return l.expanded[id] }

// ConfirmDelete opens the delete confirmation for id.
func (l *List) ConfirmDelete(id string) error {
	if err := l.Dialog.View(id); err != nil {
		return err
	}
	return l.Dialog.RequestDelete()
}
