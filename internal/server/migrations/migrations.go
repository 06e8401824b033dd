// Package migrations embeds the goose schema migrations. Identity-column
// syntax differs between the two supported engines, so each dialect keeps
// its own directory; the repository manager picks the matching one.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS
