// Package migrations holds the archive schema as numbered SQL files.
// NNN_name.up.sql files are applied in order, each in its own transaction.
package migrations

import "embed"

// FS is the embedded migration set.
//
//go:embed *.sql
var FS embed.FS
