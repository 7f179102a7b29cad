package migrations

import "embed"

// FS holds the SQL migrations applied at startup when history is stored in postgres.
//
//go:embed *.sql
var FS embed.FS
