// Package chat is the assistant conversation: a scrollback of messages, one
// question in flight at a time, and a transcript kept in local storage.
package chat

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/lifecal/internal/constants"
	"github.com/julianstephens/lifecal/internal/logger"
	"github.com/julianstephens/lifecal/internal/models"
)

// Greeting opens every fresh conversation. It is not persisted.
const Greeting = "Hi! I'm your journal assistant. Ask me anything about your past entries: " +
	"meetings, projects, moods or how a particular week went."

// Suggestions are offered while the conversation is empty.
var Suggestions = []string{
	"When did I last have a client presentation?",
	"What projects did I work on this month?",
	"Show me my mood patterns over time",
	"What were my most productive days?",
	"When did I mention feeling stressed?",
	"What meetings have I had recently?",
}

// Asker answers a question about the user's journal.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Transcript persists messages between runs.
type Transcript interface {
	AppendChatMessage(ctx context.Context, msg models.ChatMessage) error
	ListChatMessages(ctx context.Context) ([]models.ChatMessage, error)
	ClearChat(ctx context.Context) error
}

type Panel struct {
	store    Transcript
	now      func() time.Time
	messages []models.ChatMessage
	loading  bool
	pending  string
}

// NewPanel creates a panel seeded with the greeting. store may be nil.
func NewPanel(store Transcript, now func() time.Time) *Panel {
	if now == nil {
		now = time.Now
	}
	p := &Panel{store: store, now: now}
	p.messages = []models.ChatMessage{p.greeting()}
	return p
}

func (p *Panel) greeting() models.ChatMessage {
	return models.ChatMessage{ID: "greeting", Role: models.RoleAssistant, Content: Greeting, Timestamp: p.now()}
}

// Load replaces the scrollback with the stored transcript, after the greeting.
func (p *Panel) Load(ctx context.Context) error {
	if p.store == nil {
		return nil
	}
	history, err := p.store.ListChatMessages(ctx)
	if err != nil {
		return err
	}
	p.messages = append([]models.ChatMessage{p.greeting()}, history...)
	return nil
}

func (p *Panel) Messages() []models.ChatMessage {
	return append([]models.ChatMessage(nil), p.messages...)
}

func (p *Panel) Loading() bool { return p.loading }

// Fresh reports whether the user has not asked anything yet.
func (p *Panel) Fresh() bool { return len(p.messages) <= 1 }

// Submit appends the user's question and marks the panel loading. Blank
// questions, and questions asked while one is in flight, are ignored and
// Submit reports false. The returned message's ID identifies the answer
// that Resolve will accept.
func (p *Panel) Submit(ctx context.Context, question string) (models.ChatMessage, bool) {
	question = strings.TrimSpace(question)
	if question == "" || p.loading {
		return models.ChatMessage{}, false
	}
	msg := p.append(ctx, models.RoleUser, question)
	p.loading = true
	p.pending = msg.ID
	return msg, true
}

// Resolve records the outcome of the question with the given ID. Answers to
// anything but the pending question, for example one asked before Clear, are
// dropped and Resolve reports false. Failures and empty answers become the
// fallback message; the error itself is only logged.
func (p *Panel) Resolve(ctx context.Context, questionID, answer string, err error) (models.ChatMessage, bool) {
	if !p.loading || questionID != p.pending {
		logger.Debug("Dropping stale assistant answer", "question", questionID)
		return models.ChatMessage{}, false
	}
	p.loading, p.pending = false, ""
	if err != nil {
		logger.Warn("Assistant request failed", "error", err)
		answer = ""
	}
	if strings.TrimSpace(answer) == "" {
		answer = constants.ChatFallbackMessage
	}
	return p.append(ctx, models.RoleAssistant, answer), true
}

// Ask runs Submit, the request and Resolve in one call.
func (p *Panel) Ask(ctx context.Context, asker Asker, question string) (models.ChatMessage, bool) {
	q, ok := p.Submit(ctx, question)
	if !ok {
		return models.ChatMessage{}, false
	}
	answer, err := asker.Ask(ctx, q.Content)
	return p.Resolve(ctx, q.ID, answer, err)
}

// Clear wipes the stored transcript and resets to the greeting.
func (p *Panel) Clear(ctx context.Context) error {
	if p.store != nil {
		if err := p.store.ClearChat(ctx); err != nil {
			return err
		}
	}
	p.messages = []models.ChatMessage{p.greeting()}
	p.loading, p.pending = false, ""
	return nil
}

func (p *Panel) append(ctx context.Context, role models.Role, content string) models.ChatMessage {
	msg := models.ChatMessage{ID: uuid.NewString(), Role: role, Content: content, Timestamp: p.now()}
	p.messages = append(p.messages, msg)
	if p.store != nil {
		if err := p.store.AppendChatMessage(ctx, msg); err != nil {
			logger.Warn("Failed to persist chat message", "error", err)
		}
	}
	return msg
}
