package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/diewo77/go-devis/httpx"
	"github.com/diewo77/go-devis/i18n"
	"github.com/diewo77/go-devis/internal/middleware"
	"github.com/diewo77/go-devis/internal/models"
	"github.com/diewo77/go-devis/internal/services"
)

type DocumentHandler struct {
	ws  *services.Workspace
	log *zap.Logger
}

func NewDocumentHandler(ws *services.Workspace, log *zap.Logger) *DocumentHandler {
	return &DocumentHandler{ws: ws, log: log}
}

// Quotes: GET /quotes
func (h *DocumentHandler) Quotes(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, models.KindQuote, "quotes")
}

// Invoices: GET /invoices
func (h *DocumentHandler) Invoices(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, models.KindInvoice, "invoices")
}

func (h *DocumentHandler) list(w http.ResponseWriter, r *http.Request, kind models.Kind, heading string) {
	docs := h.ws.Documents(kind)
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": docs, "total": len(docs)})
		return
	}
	render(w, r, h.log, "documents.html", map[string]any{"Documents": docs, "Heading": heading})
}

// Show: GET /documents/{id}
func (h *DocumentHandler) Show(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.ws.Find(chi.URLParam(r, "id"))
	if !ok {
		h.notFound(w, r)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"document": doc, "tax": doc.Tax(), "total": doc.Total()})
		return
	}
	http.Redirect(w, r, "/documents/"+doc.ID+"/preview", http.StatusSeeOther)
}

// Preview: GET /documents/{id}/preview – the print layout
func (h *DocumentHandler) Preview(w http.ResponseWriter, r *http.Request) {
	p, ok := h.ws.Preview(chi.URLParam(r, "id"), middleware.LangFrom(r))
	if !ok {
		h.notFound(w, r)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, p)
		return
	}
	render(w, r, h.log, "preview.html", map[string]any{"Preview": p})
}

func (h *DocumentHandler) notFound(w http.ResponseWriter, r *http.Request) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	http.Error(w, i18n.T(middleware.LangFrom(r), "not_found"), http.StatusNotFound)
}
