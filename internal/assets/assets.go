// Package assets embeds the files the development bridge server ships with.
package assets

import "embed"

//go:embed all:migrations
var MigrationsFS embed.FS
