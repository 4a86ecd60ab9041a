// Package migrations embeds the schema files applied to the local database.
package migrations

import "embed"

//go:embed sqlite/*.sql
var FS embed.FS
