// Package migrations embeds the goose SQL migrations so the server can
// apply them at startup.
package migrations

import "embed"

// FS holds every migration file in this directory.
//
//go:embed *.sql
var FS embed.FS
