package server

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/jonathan/income-strategist/internal/app"
	"github.com/jonathan/income-strategist/internal/display"
	"github.com/jonathan/income-strategist/internal/form"
)

//go:embed templates/page.html
var templateFS embed.FS

// Page header text.
const (
	PageTitle   = "Passive Income Strategist"
	PageTagline = "Unlock your potential in the Indian tech market."
)

// pageData is what page.html renders.
type pageData struct {
	Title          string
	Tagline        string
	Form           form.View
	Loading        bool
	Report         *display.Report
	UnparsedNotice string
}

func parsePage() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/page.html")
}

// renderPage draws the whole page for one session.
func (s *Server) renderPage(w http.ResponseWriter, status int, f *form.Form, state app.State) {
	data := pageData{
		Title:   PageTitle,
		Tagline: PageTagline,
		Form:    f.View(state.IsLoading, state.Error),
		Loading: state.IsLoading,
		Report:  display.Build(state.Report),

		UnparsedNotice: display.UnparsedNotice,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.page.Execute(w, data); err != nil {
		s.log.Error("error rendering page", "error", err)
	}
}
