// Package webassets embeds the static shells for the login and admin
// pages. The pages are plain bootstrap documents; all content comes from
// the JSON API.
package webassets

import (
	"embed"
)

//go:embed pages/*.html
var FS embed.FS

// Page returns one embedded page by name.
func Page(name string) ([]byte, error) {
	return FS.ReadFile("pages/" + name + ".html")
}
