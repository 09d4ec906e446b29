package migrations

import "embed"

// FS contains embedded SQLite migrations for preference storage.
//
//go:embed *.sql
var FS embed.FS
