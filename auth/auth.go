// Package auth gates business routes behind the workspace session flag. There are no
// accounts or credentials: logging in only opens the session.
package auth

import (
	"net/http"

	"github.com/diewo77/go-devis/httpx"
)

// Session reports whether a session is open.
type Session interface {
	SessionActive() bool
}

// RequireSession redirects to /login (HTML) or returns 401 JSON while no session is open.
func RequireSession(s Session) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !s.SessionActive() {
				if httpx.WantsJSON(r) {
					httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
					return
				}
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
