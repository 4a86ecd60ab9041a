package models

// Settings holds the locally persisted client settings.
type Settings struct {
	APIURL            string
	Timezone          string
	RequestsPerSecond int
}
