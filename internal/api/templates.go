package api

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

func LoadTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		// letters splits a string into one-character strings.
		"letters": func(s string) []string {
			return strings.Split(s, "")
		},
	}

	return template.New("base").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}
