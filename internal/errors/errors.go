package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/lifecal/internal/logger"
)

// Messager is implemented by errors that carry a message meant for the user,
// such as an application error reported by the backend.
type Messager interface {
	UserMessage() string
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// UserMessage returns the most specific user-facing message found in err's chain,
// or fallback when none is available.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var m Messager
	if stderrors.As(err, &m) {
		if msg := strings.TrimSpace(m.UserMessage()); msg != "" {
			return msg
		}
	}
	return fallback
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
