// Package migrations holds the postgres schema, embedded into the binary.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
