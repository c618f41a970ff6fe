// Package migrations embeds the goose SQL migrations for pgdoc.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
