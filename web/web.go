// Package web embeds the HTML templates for the server-rendered views, so
// the binary and the tests render them without depending on the working
// directory.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded template set.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}
