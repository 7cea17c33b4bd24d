package middleware

import (
	"context"
	"net/http"

	"github.com/diewo77/go-devis/i18n"
)

type ctxKey string

const ctxLang ctxKey = "pref_lang"

// Prefs extracts the language preference (query > cookie > Accept-Language > fallback)
// and stores it in context. A query-provided language is persisted in a cookie for ~30 days.
func Prefs(fallback string) func(http.Handler) http.Handler {
	fallback = i18n.Normalize(fallback)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			if c, err := r.Cookie("lang"); err == nil {
				lang = c.Value
			}
			if ql := r.URL.Query().Get("lang"); ql == "fr" || ql == "en" {
				lang = ql
				http.SetCookie(w, &http.Cookie{Name: "lang", Value: lang, Path: "/", MaxAge: 86400 * 30, SameSite: http.SameSiteLaxMode})
			}
			if lang != "fr" && lang != "en" {
				lang = fallback
				if al := r.Header.Get("Accept-Language"); al != "" {
					lang = i18n.DetectLanguage(al)
				}
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxLang, lang)))
		})
	}
}

// LangFrom returns language preference from context or fallback.
func LangFrom(r *http.Request) string {
	if v, ok := r.Context().Value(ctxLang).(string); ok && v != "" {
		return v
	}
	return i18n.Default
}
