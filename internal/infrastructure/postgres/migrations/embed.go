// Package migrations scripts goose embutidos no binário.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
