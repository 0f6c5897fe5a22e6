package migrations

import "embed"

// FS contains the SQLite schema of the message log.
//
//go:embed *.sql
var FS embed.FS
