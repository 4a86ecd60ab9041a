package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "lifecal"
	DefaultKeyringUser = "auth-token"
	DefaultConfigPath  = "~/.config/lifecal/lifecal.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// MonthFormat is used for --month flags (YYYY-MM)
	MonthFormat = "2006-01"

	// API constants
	DefaultAPIURL         = "http://localhost:3000/api"
	APIURLEnvVar          = "LIFECAL_API_URL"
	RequestTimeout        = 30 * time.Second
	DefaultRequestsPerSec = 5

	// Logging constants
	LogDirName     = "logs"
	LogFileName    = "lifecal.log"
	LogLevelEnvVar = "LIFECAL_LOG_LEVEL"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "lifecal-"
	BackupFileSuffix = ".json"

	// Chat constants
	ChatFallbackMessage = "Sorry, I couldn't reach the assistant just now. Please try again in a moment."
)

// Session States
const (
	StateCalendar SessionState = iota
	StateDashboard
	StateChat
	StateStorybook
	StateLogin
	StateEntryDetail
	StateEntryForm
	StateStoryForm
	StateConfirmDelete
)
