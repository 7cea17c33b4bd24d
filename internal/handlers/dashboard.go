package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/diewo77/go-devis/httpx"
	"github.com/diewo77/go-devis/internal/services"
)

type DashboardHandler struct {
	ws  *services.Workspace
	log *zap.Logger
}

func NewDashboardHandler(ws *services.Workspace, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{ws: ws, log: log}
}

// Show: GET /dashboard – HTML or JSON
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	dash := h.ws.Dashboard()
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, dash)
		return
	}
	render(w, r, h.log, "dashboard.html", map[string]any{"Dashboard": dash})
}
