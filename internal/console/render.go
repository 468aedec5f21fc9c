package console

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templatesFS embed.FS

// PageData is handed to every page template.
type PageData struct {
	Title     string
	Page      string
	AdminName string
	CSRFToken string
	Flash     *Flash
	Data      any
}

// renderer clones the base layout per request and parses the page into the
// clone, so each page can define its own "content" block.
type renderer struct {
	base *template.Template
}

func newRenderer() *renderer {
	base := template.Must(template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, "templates/base.html"))
	return &renderer{base: base}
}

func (r *renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tmpl, err := r.base.Clone()
	if err != nil {
		return fmt.Errorf("clone template: %w", err)
	}
	if _, err := tmpl.ParseFS(templatesFS, "templates/"+name); err != nil {
		return fmt.Errorf("parse page template %s: %w", name, err)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money":    func(d decimal.Decimal) string { return d.StringFixed(2) },
		"deref":    deref,
		"markdown": renderMarkdown,
		"formatTime": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Local().Format("2006-01-02 15:04:05")
		},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
