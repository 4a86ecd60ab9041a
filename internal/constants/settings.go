package constants

const (
	SettingAPIURL            = "api_url"
	SettingTimezone          = "timezone"
	SettingRequestsPerSecond = "requests_per_second"

	DefaultTimezone = "Local" // Use system local timezone by default
)
