package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/diewo77/go-devis/httpx"
	"github.com/diewo77/go-devis/internal/services"
)

type SessionHandler struct {
	ws  *services.Workspace
	log *zap.Logger
}

func NewSessionHandler(ws *services.Workspace, log *zap.Logger) *SessionHandler {
	return &SessionHandler{ws: ws, log: log}
}

// Page: GET /login
func (h *SessionHandler) Page(w http.ResponseWriter, r *http.Request) {
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"session_active": h.ws.SessionActive()})
		return
	}
	if h.ws.SessionActive() {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	render(w, r, h.log, "login.html", nil)
}

// Login: POST /login opens the session. No credentials are checked.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	err := h.ws.Login(r.Context())
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, envelope(r, map[string]any{"session_active": true}, err))
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout: POST /logout
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	err := h.ws.Logout(r.Context())
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, envelope(r, map[string]any{"session_active": false}, err))
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
