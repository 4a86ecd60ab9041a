package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: false, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	want := filepath.Join(configDir, "logs", "lifecal.log")
	if Path() != want {
		t.Errorf("Path() = %q, want %q", Path(), want)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}
	if Logger.GetLevel() != log.InfoLevel {
		t.Errorf("level = %v, want info", Logger.GetLevel())
	}

	Debug("Test debug message")
	Info("Test info message", "path", "/entries")
	Warn("Test warning message")
	Error("Test error message")

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("expected log file to be written: %v", err)
	}
	if strings.Contains(string(data), "Test debug message") {
		t.Error("debug record written at info level")
	}
	if !strings.Contains(string(data), "Test info message") {
		t.Errorf("log file missing info record:\n%s", data)
	}
}

func TestInitLevel(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    log.Level
		wantErr bool
	}{
		{name: "debug flag", cfg: Config{Debug: true}, want: log.DebugLevel},
		{name: "explicit level wins", cfg: Config{Debug: true, Level: "warn"}, want: log.WarnLevel},
		{name: "invalid level", cfg: Config{Level: "loud"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.ConfigDir = t.TempDir()
			err := Init(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Init() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && Logger.GetLevel() != tt.want {
				t.Errorf("level = %v, want %v", Logger.GetLevel(), tt.want)
			}
		})
	}
}

func TestForTagsComponent(t *testing.T) {
	if err := Init(Config{ConfigDir: t.TempDir()}); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	Logger.SetOutput(&buf)

	For("backup").Info("Snapshot written")
	if !strings.Contains(buf.String(), "component=backup") {
		t.Errorf("record = %q", buf.String())
	}
}

func TestFileOnlyWithoutMirrorIsNoop(t *testing.T) {
	if err := Init(Config{ConfigDir: t.TempDir()}); err != nil {
		t.Fatal(err)
	}
	restore := FileOnly()
	restore()
	Info("still logging")
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
	For("api").Info("discarded")
}
