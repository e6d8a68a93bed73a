// Package migrations embeds the goose SQL migrations applied at startup.
package migrations

import "embed"

// Migrations holds the embedded *.sql migration files.
//
//go:embed *.sql
var Migrations embed.FS
