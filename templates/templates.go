// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"time"

	"github.com/dustin/go-humanize"
)

//go:embed html/*.html
var htmlFS embed.FS

//go:embed static
var staticFS embed.FS

const layoutFile = "html/base.layout.html"

// Page names
const (
	IndexPage   = "index.page.html"
	DetailPage  = "detail.page.html"
	ResultsPage = "results.page.html"
)

var functions = template.FuncMap{
	"naturaltime": humanize.Time,
	"pluralize": func(n int) string {
		if n == 1 {
			return ""
		}
		return "s"
	},
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("Jan 2, 2006, 15:04")
	},
}

// Pages holds one parsed template set per page, each combined with the layout
type Pages map[string]*template.Template

// Parse parses every embedded page against the base layout
func Parse() (Pages, error) {
	names, err := fs.Glob(htmlFS, "html/*.page.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	pages := Pages{}
	for _, name := range names {
		ts, err := template.New(path.Base(name)).Funcs(functions).ParseFS(htmlFS, layoutFile, name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[path.Base(name)] = ts
	}

	return pages, nil
}

// MustParse is Parse for package-level initialization
func MustParse() Pages {
	pages, err := Parse()
	if err != nil {
		panic(err)
	}
	return pages
}

// Render executes the named page into w. Output is buffered so a failed
// render never leaves a half-written page.
func (p Pages) Render(w io.Writer, name string, data any) error {
	ts, ok := p[name]
	if !ok {
		return fmt.Errorf("template %s does not exist", name)
	}

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	_, err := buf.WriteTo(w)
	return err
}

// Static serves the embedded stylesheet and assets
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServerFS(sub)
}
