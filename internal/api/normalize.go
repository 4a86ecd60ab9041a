package api

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/julianstephens/lifecal/internal/constants"
	"github.com/julianstephens/lifecal/internal/logger"
	"github.com/julianstephens/lifecal/internal/models"
)

// Wire shapes as the backend sends them. Documents may carry either "_id" or
// "id", dates may be full timestamps, and summary may be a string or an object.

type wireEntry struct {
	MongoID      string          `json:"_id"`
	ID           string          `json:"id"`
	Date         string          `json:"date"`
	Meetings     []wireMeeting   `json:"meetings"`
	Tasks        []wireTask      `json:"tasks"`
	Mood         string          `json:"mood"`
	JournalNotes string          `json:"journalNotes"`
	Summary      json.RawMessage `json:"summary"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}

type wireMeeting struct {
	Title string `json:"title"`
	Time  string `json:"time"`
	Notes string `json:"notes"`
}

type wireTask struct {
	Caption string `json:"caption"`
	URL     string `json:"url"`
}

type wireStory struct {
	MongoID         string   `json:"_id"`
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Content         string   `json:"content"`
	StartDate       string   `json:"startDate"`
	EndDate         string   `json:"endDate"`
	RelatedEntryIDs []string `json:"relatedEntryIds"`
	AIModel         string   `json:"aiModel"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
}

type wireUser struct {
	MongoID  string `json:"_id"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func pickID(id, mongoID string) string {
	if mongoID != "" {
		return mongoID
	}
	return id
}

// normalizeDate reduces a date or timestamp to its YYYY-MM-DD calendar date.
// The backend stores days at UTC midnight, so the leading date is the day.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= len(constants.DateFormat) {
		if _, err := time.Parse(constants.DateFormat, s[:len(constants.DateFormat)]); err == nil {
			return s[:len(constants.DateFormat)]
		}
	}
	return s
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// normalizeSummary accepts a plain string, {"text": ...} or {"content": ...}.
func normalizeSummary(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Text    string `json:"text"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.Text != "" {
			return obj.Text
		}
		return obj.Content
	}
	return ""
}

func (w wireEntry) toModel() models.Entry {
	mood, err := models.ParseMood(w.Mood)
	if err != nil {
		logger.For("api").Debug("Dropping unknown mood", "mood", w.Mood, "date", w.Date)
	}

	e := models.Entry{
		ID:           pickID(w.ID, w.MongoID),
		Date:         normalizeDate(w.Date),
		Meetings:     make([]models.Meeting, 0, len(w.Meetings)),
		Tasks:        make([]models.Task, 0, len(w.Tasks)),
		Mood:         mood,
		JournalNotes: w.JournalNotes,
		Summary:      normalizeSummary(w.Summary),
		CreatedAt:    parseTimestamp(w.CreatedAt),
		UpdatedAt:    parseTimestamp(w.UpdatedAt),
	}
	for _, m := range w.Meetings {
		e.Meetings = append(e.Meetings, models.Meeting(m))
	}
	for _, t := range w.Tasks {
		e.Tasks = append(e.Tasks, models.Task(t))
	}
	return e
}

func (w wireStory) toModel() models.Story {
	return models.Story{
		ID:              pickID(w.ID, w.MongoID),
		Title:           w.Title,
		Content:         w.Content,
		StartDate:       normalizeDate(w.StartDate),
		EndDate:         normalizeDate(w.EndDate),
		RelatedEntryIDs: w.RelatedEntryIDs,
		AIModel:         w.AIModel,
		CreatedAt:       parseTimestamp(w.CreatedAt),
		UpdatedAt:       parseTimestamp(w.UpdatedAt),
	}
}

func (w wireUser) toModel() models.User {
	name := w.Name
	if name == "" {
		name = w.Username
	}
	return models.User{ID: pickID(w.ID, w.MongoID), Name: name, Email: w.Email}
}

// NormalizeEntries decodes an entry list payload.
func NormalizeEntries(payload []byte) ([]models.Entry, error) {
	var wire []wireEntry
	if err := json.Unmarshal(payload, &wire); err != nil {
		return nil, err
	}
	out := make([]models.Entry, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toModel())
	}
	return out, nil
}

// NormalizeEntry decodes a single entry payload.
func NormalizeEntry(payload []byte) (models.Entry, error) {
	var w wireEntry
	if err := json.Unmarshal(payload, &w); err != nil {
		return models.Entry{}, err
	}
	return w.toModel(), nil
}
