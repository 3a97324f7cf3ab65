// Package web embeds the HTML templates and static assets of the UI.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"strconv"
)

// TemplatesFS embeds HTML templates for server-side rendering.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS embeds static assets (css/js).
//
//go:embed static/*
var StaticFS embed.FS

// Funcs are the helpers available to every template.
var Funcs = template.FuncMap{
	"idstr": func(id uint) string {
		return strconv.FormatUint(uint64(id), 10)
	},
	"selected": func(current string, id uint) bool {
		return current == strconv.FormatUint(uint64(id), 10)
	},
}

// Templates parses every embedded template.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(TemplatesFS, "templates/*.html")
}

// Static returns the static assets rooted at the static directory.
func Static() (fs.FS, error) {
	return fs.Sub(StaticFS, "static")
}
