package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexRendersPage(t *testing.T) {
	w := httptest.NewRecorder()
	Index(Page{Title: "Lights Out", Levels: 5})(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "<title>Lights Out</title>")
	assert.Contains(t, w.Body.String(), "5 levels")
}

func TestStaticServesAssets(t *testing.T) {
	h := http.StripPrefix("/static/", Static())
	for _, name := range []string{"app.js", "style.css"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/"+name, nil))
		assert.Equal(t, http.StatusOK, w.Code, name)
		assert.NotZero(t, w.Body.Len(), name)
	}
}
