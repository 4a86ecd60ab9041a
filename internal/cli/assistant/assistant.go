package assistant

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/lifecal/internal/chat"
	"github.com/julianstephens/lifecal/internal/cli"
	"github.com/julianstephens/lifecal/internal/models"
)

type AskCmd struct {
	Question []string `arg:"" optional:"" help:"Question about your journal."`
}

func (c *AskCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireSession(); err != nil {
		return err
	}

	question := strings.TrimSpace(strings.Join(c.Question, " "))
	if question == "" {
		ctx.Println("Ask me something about your journal, for example:")
		for _, s := range chat.Suggestions {
			ctx.Printf("  lifecal ask %q\n", s)
		}
		return nil
	}

	panel := chat.NewPanel(ctx.Store, ctx.Clock())
	reply, ok := panel.Ask(ctx.Ctx(), ctx.API, question)
	if !ok {
		return errors.New("question was not sent")
	}
	ctx.Println(reply.Content)
	return nil
}

type ChatHistoryCmd struct {
	Limit int `short:"n" default:"20" help:"Number of most recent messages to show (0 for all)."`
}

func (c *ChatHistoryCmd) Run(ctx *cli.Context) error {
	panel := chat.NewPanel(ctx.Store, ctx.Clock())
	if err := panel.Load(ctx.Ctx()); err != nil {
		return fmt.Errorf("failed to load chat history: %w", err)
	}
	if panel.Fresh() {
		ctx.Println("No conversation yet.")
		return nil
	}

	msgs := panel.Messages()[1:]
	if c.Limit > 0 && len(msgs) > c.Limit {
		msgs = msgs[len(msgs)-c.Limit:]
	}
	for _, m := range msgs {
		who := "You"
		if m.Role == models.RoleAssistant {
			who = "Assistant"
		}
		ctx.Printf("[%s] %s: %s\n", m.Timestamp.Format("2006-01-02 15:04"), who, m.Content)
	}
	return nil
}

type ChatClearCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ChatClearCmd) Run(ctx *cli.Context) error {
	ok, err := ctx.Confirm("Clear the saved conversation?", c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Cancelled.")
		return nil
	}
	if err := chat.NewPanel(ctx.Store, ctx.Clock()).Clear(ctx.Ctx()); err != nil {
		return fmt.Errorf("failed to clear chat: %w", err)
	}
	ctx.Println("✓ Conversation cleared")
	return nil
}
