// Package web holds the browser client: one page template and its assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.tmpl static/*
var assets embed.FS

var page = template.Must(template.ParseFS(assets, "templates/index.tmpl"))

// Page is the data rendered into index.tmpl.
type Page struct {
	Title  string
	Levels int
}

// Index renders the game page.
func Index(p Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Execute(w, p); err != nil {
			http.Error(w, template.HTMLEscapeString(err.Error()), http.StatusInternalServerError)
		}
	}
}

// Static serves the embedded assets. Mount it with the /static/ prefix
// stripped.
func Static() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
