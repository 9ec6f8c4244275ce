// Package public embeds the static pages served at the site root.
package public

import "embed"

// Files holds the landing and thank-you pages
//
//go:embed *.html
var Files embed.FS
