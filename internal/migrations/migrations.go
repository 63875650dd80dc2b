// Package migrations embeds the Postgres schema as goose migrations.
package migrations

import "embed"

//go:embed *.up.sql
var FS embed.FS
