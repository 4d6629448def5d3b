// Package migrations holds the goose SQL migrations of the relational backend.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
