package migrations

import "embed"

// FS contains embedded SQLite migrations for the album database.
//
//go:embed *.sql
var FS embed.FS
