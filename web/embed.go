package web

import "embed"

// Templates embeds printable document templates.
//
//go:embed templates/*.html
var Templates embed.FS
