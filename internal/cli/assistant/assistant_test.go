package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/julianstephens/lifecal/internal/cli/clitest"
	"github.com/julianstephens/lifecal/internal/constants"
)

func TestAskPersistsTranscript(t *testing.T) {
	env := clitest.SignedIn(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Question string `json:"question"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if r.URL.Path != "/api/ai/ask" || body.Question != "When did I last present?" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"answer":"On 2024-05-25 you gave a Client Presentation."}`))
	})

	cmd := &AskCmd{Question: []string{"When", "did", "I", "last", "present?"}}
	if err := cmd.Run(env.Context); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !strings.Contains(env.Buf.String(), "Client Presentation") {
		t.Errorf("output = %q", env.Buf.String())
	}

	msgs, err := env.Store.ListChatMessages(context.Background())
	if err != nil {
		t.Fatalf("ListChatMessages() failed: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("stored %d messages, want 2", len(msgs))
	}
	if msgs[0].Content != "When did I last present?" {
		t.Errorf("first message = %q", msgs[0].Content)
	}
}

func TestAskFallsBackOnFailure(t *testing.T) {
	env := clitest.SignedIn(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	if err := (&AskCmd{Question: []string{"anything"}}).Run(env.Context); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !strings.Contains(env.Buf.String(), constants.ChatFallbackMessage) {
		t.Errorf("output = %q, want fallback", env.Buf.String())
	}
}

func TestAskWithoutQuestionShowsSuggestions(t *testing.T) {
	called := false
	env := clitest.SignedIn(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	if err := (&AskCmd{Question: []string{"  "}}).Run(env.Context); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if called {
		t.Error("blank question should not reach the backend")
	}
	if !strings.Contains(env.Buf.String(), "mood patterns") {
		t.Errorf("output = %q", env.Buf.String())
	}
}

func TestChatHistoryAndClear(t *testing.T) {
	env := clitest.SignedIn(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"answer":"Three meetings."}`))
	})

	if err := (&ChatHistoryCmd{}).Run(env.Context); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !strings.Contains(env.Buf.String(), "No conversation yet.") {
		t.Errorf("output = %q", env.Buf.String())
	}

	if err := (&AskCmd{Question: []string{"How many meetings?"}}).Run(env.Context); err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	env.Buf.Reset()
	if err := (&ChatHistoryCmd{Limit: 1}).Run(env.Context); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	out := env.Buf.String()
	if strings.Contains(out, "How many meetings?") || !strings.Contains(out, "Assistant: Three meetings.") {
		t.Errorf("limited history = %q", out)
	}

	if err := (&ChatClearCmd{Yes: true}).Run(env.Context); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	msgs, _ := env.Store.ListChatMessages(context.Background())
	if len(msgs) != 0 {
		t.Errorf("%d messages left after clear", len(msgs))
	}
}
