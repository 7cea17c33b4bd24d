// Package view renders the HTML pages from templates embedded in the binary.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/diewo77/go-devis/i18n"
	"github.com/diewo77/go-devis/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

var (
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}

	langResolver    = func(_ *http.Request) string { return i18n.Default }
	sessionResolver = func(_ *http.Request) bool { return false }
)

// SetLangResolver allows the host app to provide a custom language resolver (e.g., reading from context).
func SetLangResolver(f func(*http.Request) string) {
	if f != nil {
		langResolver = f
	}
}

// SetSessionResolver tells the layout whether to show the logged-in navigation.
func SetSessionResolver(f func(*http.Request) bool) {
	if f != nil {
		sessionResolver = f
	}
}

// Funcs returns the template func map bound to a language.
func Funcs(lang string) template.FuncMap {
	return template.FuncMap{
		"t":         func(code string) string { return i18n.T(lang, code) },
		"lang":      func() string { return lang },
		"money":     func(v float64) string { return i18n.Money(lang, v) },
		"number":    func(v float64) string { return i18n.Number(lang, v) },
		"date":      func(iso string) string { return i18n.Date(lang, iso) },
		"lineTotal": models.LineTotal,
		// logo lets an image data URI through the src sanitizer; anything else is dropped.
		"logo": func(p models.CompanyProfile) template.URL {
			if p.HasLogo() {
				return template.URL(p.Logo)
			}
			return ""
		},
	}
}

func load(name string) (*template.Template, error) {
	tplCache.RLock()
	t, ok := tplCache.m[name]
	tplCache.RUnlock()
	if ok {
		return t, nil
	}
	t, err := template.New("layout.html").Funcs(Funcs(i18n.Default)).
		ParseFS(templatesFS, "templates/layout.html", "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	tplCache.Lock()
	tplCache.m[name] = t
	tplCache.Unlock()
	return t, nil
}

// Render executes a page inside the shared layout. name is the page file (e.g.
// "dashboard.html"). Output is buffered so a template error never sends half a page.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Year"]; !exists {
		data["Year"] = time.Now().Year()
	}
	if _, exists := data["IsLoggedIn"]; !exists {
		data["IsLoggedIn"] = sessionResolver(r)
	}
	base, err := load(name)
	if err != nil {
		return err
	}
	t, err := base.Clone()
	if err != nil {
		return err
	}
	t.Funcs(Funcs(i18n.Normalize(langResolver(r))))

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = buf.WriteTo(w)
	return err
}
