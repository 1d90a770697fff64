// Package migrations embeds the SQLite schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// InitialSchema is the first migration applied to a fresh database.
const InitialSchema = "001_initial_schema.up.sql"
