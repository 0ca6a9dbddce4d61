// Package appfs embeds the files the application needs at runtime:
// database migrations and email templates.
package appfs

import "embed"

//go:embed migrations templates
var FS embed.FS
