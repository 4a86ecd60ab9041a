// Package logger is the process-wide structured log. Records always go to a
// rotating file under the config directory; --debug mirrors them to stderr
// until the TUI takes over the terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/lifecal/internal/constants"
)

var (
	// Logger is the global logger instance
	Logger *log.Logger

	mu      sync.Mutex
	file    *lumberjack.Logger
	mirror  bool
	logPath string
)

// Config holds logger configuration
type Config struct {
	Debug     bool
	ConfigDir string
	// Level overrides the default level (info, or debug with Debug set).
	Level string
}

// Init opens <ConfigDir>/logs/lifecal.log and installs the global logger.
func Init(cfg Config) error {
	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
	}
	if cfg.Level != "" {
		parsed, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	logDir := filepath.Join(cfg.ConfigDir, constants.LogDirName)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	logPath = filepath.Join(logDir, constants.LogFileName)
	file = &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	mirror = cfg.Debug

	Logger = log.NewWithOptions(output(), log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

func output() io.Writer {
	if mirror {
		return io.MultiWriter(os.Stderr, file)
	}
	return file
}

// Path is the active log file, or "" before Init.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// FileOnly stops the stderr mirror, for as long as a full-screen UI owns the
// terminal. The returned func restores it.
func FileOnly() (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	if Logger == nil || !mirror {
		return func() {}
	}
	Logger.SetOutput(file)
	return func() {
		mu.Lock()
		defer mu.Unlock()
		if Logger != nil && file != nil {
			Logger.SetOutput(output())
		}
	}
}

// For returns a logger tagged with a component name, so records from the API
// client, the TUI and the backup job can be told apart in one file.
func For(component string) *log.Logger {
	if Logger == nil {
		return log.New(io.Discard)
	}
	return Logger.With("component", component)
}

func Debug(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
