package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses the HTML page templates embedded in the binary
func Templates() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/*.html")
}
