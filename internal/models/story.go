package models

import "time"

// Story is an AI-generated narrative over a date range.
type Story struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	StartDate       string    `json:"startDate"`
	EndDate         string    `json:"endDate"`
	RelatedEntryIDs []string  `json:"relatedEntryIds,omitempty"`
	AIModel         string    `json:"aiModel,omitempty"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt,omitempty"`
}

// StoryRequest asks the backend to generate a story. PeriodDescription carries the
// user's free-text prompt.
type StoryRequest struct {
	Title             string `json:"title"`
	StartDate         string `json:"startDate"`
	EndDate           string `json:"endDate"`
	PeriodDescription string `json:"periodDescription"`
	Prompt            string `json:"prompt,omitempty"`
}

// StoryUpdate carries the mutable fields of a story.
type StoryUpdate struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}
