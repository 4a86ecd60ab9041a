package backups

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/lifecal/internal/backup"
	"github.com/julianstephens/lifecal/internal/cli/clitest"
)

func journalBackend(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/entries":
		w.Write([]byte(`[{"_id":"e1","date":"2024-05-20","meetings":[],"tasks":[]},{"_id":"e2","date":"2024-05-25","meetings":[],"tasks":[]}]`))
	case "/api/stories":
		w.Write([]byte(`[{"_id":"s1","title":"Week","content":"text","startDate":"2024-05-18","endDate":"2024-05-25"}]`))
	default:
		http.NotFound(w, r)
	}
}

func TestBackupCreateListShow(t *testing.T) {
	env := clitest.SignedIn(t, journalBackend)

	if err := (&BackupListCmd{}).Run(env.Context); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(env.Buf.String(), "No backups found.") {
		t.Errorf("list output = %q", env.Buf.String())
	}

	env.Buf.Reset()
	if err := (&BackupCreateCmd{}).Run(env.Context); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	out := env.Buf.String()
	i := strings.Index(out, "lifecal-")
	if i < 0 {
		t.Fatalf("create output = %q", out)
	}
	name := strings.TrimSpace(out[i:])

	env.Buf.Reset()
	if err := (&BackupListCmd{}).Run(env.Context); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(env.Buf.String(), name) {
		t.Errorf("list output missing %s:\n%s", name, env.Buf.String())
	}

	env.Buf.Reset()
	if err := (&BackupShowCmd{File: name}).Run(env.Context); err != nil {
		t.Fatalf("show failed: %v", err)
	}
	show := env.Buf.String()
	for _, want := range []string{"test@example.com", "2024-05-20 → 2024-05-25"} {
		if !strings.Contains(show, want) {
			t.Errorf("show output missing %q:\n%s", want, show)
		}
	}
}

func TestBackupCreateRequiresSession(t *testing.T) {
	env := clitest.New(t, journalBackend)
	if err := (&BackupCreateCmd{}).Run(env.Context); err == nil {
		t.Error("expected create to fail while signed out")
	}
}

func TestBackupCreateFailsOnBackendError(t *testing.T) {
	env := clitest.SignedIn(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/stories" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		journalBackend(w, r)
	})

	if err := (&BackupCreateCmd{}).Run(env.Context); err == nil {
		t.Fatal("expected create to fail")
	}
	env.Buf.Reset()
	if err := (&BackupListCmd{}).Run(env.Context); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(env.Buf.String(), "No backups found.") {
		t.Errorf("a failed backup should write nothing:\n%s", env.Buf.String())
	}
}

func TestAutomaticBackupRunsInBackground(t *testing.T) {
	started := make(chan struct{}, 2)
	env := clitest.SignedIn(t, func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-r.Context().Done()
	})

	stop := env.StartAutomaticBackup()
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		stop()
		t.Fatal("automatic backup never reached the backend")
	}
	stop()

	backups, err := backup.NewManager(env.Store.GetConfigPath()).List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("cancelled backup left %d snapshots", len(backups))
	}
}

func TestAutomaticBackupOncePerDay(t *testing.T) {
	env := clitest.SignedIn(t, journalBackend)
	mgr := backup.NewManager(env.Store.GetConfigPath())

	env.PerformAutomaticBackup(context.Background())
	env.PerformAutomaticBackup(context.Background())

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("got %d snapshots, want 1", len(backups))
	}
}
