// Package migrations embeds the goose SQL migrations for the contact book
// schema so tests, the API server and contactctl apply the same files.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
// Pass it to goose.NewProvider instead of relying on a filesystem path.
//
//go:embed *.sql
var FS embed.FS
