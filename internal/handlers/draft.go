package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/diewo77/go-devis/httpx"
	"github.com/diewo77/go-devis/internal/models"
	"github.com/diewo77/go-devis/internal/services"
	"github.com/diewo77/go-devis/validation"
)

type DraftHandler struct {
	ws  *services.Workspace
	log *zap.Logger
}

func NewDraftHandler(ws *services.Workspace, log *zap.Logger) *DraftHandler {
	return &DraftHandler{ws: ws, log: log}
}

type draftResponse struct {
	Draft  services.Draft `json:"draft"`
	Totals models.Totals  `json:"totals"`
}

func (h *DraftHandler) reply(w http.ResponseWriter, r *http.Request, status int, d services.Draft) {
	if httpx.WantsJSON(r) {
		httpx.JSON(w, status, draftResponse{Draft: d, Totals: d.Totals()})
		return
	}
	if r.Method != http.MethodGet {
		http.Redirect(w, r, "/draft", http.StatusSeeOther)
		return
	}
	render(w, r, h.log, "draft.html", map[string]any{"Draft": d, "Totals": d.Totals()})
}

func (h *DraftHandler) fields(w http.ResponseWriter, r *http.Request) (map[string]string, bool) {
	fields, err := decodeFields(w, r)
	if err == nil {
		return fields, true
	}
	if errors.Is(err, services.ErrInvalidValue) {
		writeError(w, r, h.log, err)
	} else {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
	}
	return nil, false
}

// Show: GET /draft – the draft with its live totals
func (h *DraftHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.reply(w, r, http.StatusOK, h.ws.Draft())
}

// Start: POST /draft {"type": "quote"|"invoice"} discards the current draft.
func (h *DraftHandler) Start(w http.ResponseWriter, r *http.Request) {
	fields, ok := h.fields(w, r)
	if !ok {
		return
	}
	kind := fields[services.FieldKind]
	if kind == "" {
		kind = fields["kind"]
	}
	v := validation.Violations{}
	validation.Required(services.FieldKind, kind, v)
	if v.Empty() {
		validation.OneOf(services.FieldKind, kind, models.KindNames, v)
	}
	if !v.Empty() {
		writeViolations(w, v)
		return
	}
	k, err := models.ParseKind(kind)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	d, err := h.ws.StartDraft(k)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.reply(w, r, http.StatusCreated, d)
}

// Update: PATCH /draft sets client/date fields or switches kind. All changes apply or none.
func (h *DraftHandler) Update(w http.ResponseWriter, r *http.Request) {
	fields, ok := h.fields(w, r)
	if !ok {
		return
	}
	d, err := h.ws.EditDraft(func(d services.Draft) (services.Draft, error) {
		for name, value := range fields {
			var err error
			if d, err = d.SetField(name, value); err != nil {
				return d, err
			}
		}
		return d, nil
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.reply(w, r, http.StatusOK, d)
}

// AddItem: POST /draft/items appends a blank row, optionally filled from the body.
func (h *DraftHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	fields, ok := h.fields(w, r)
	if !ok {
		return
	}
	d, err := h.ws.EditDraft(func(d services.Draft) (services.Draft, error) {
		d = d.AddLineItem()
		return applyItemFields(d, len(d.Items)-1, fields)
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.reply(w, r, http.StatusCreated, d)
}

// UpdateItem: PATCH /draft/items/{index} {"quantity": "2", ...}
func (h *DraftHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	index, ok := h.index(w, r)
	if !ok {
		return
	}
	fields, ok := h.fields(w, r)
	if !ok {
		return
	}
	d, err := h.ws.EditDraft(func(d services.Draft) (services.Draft, error) {
		return applyItemFields(d, index, fields)
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.reply(w, r, http.StatusOK, d)
}

// RemoveItem: DELETE /draft/items/{index}
func (h *DraftHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	index, ok := h.index(w, r)
	if !ok {
		return
	}
	d, err := h.ws.EditDraft(func(d services.Draft) (services.Draft, error) {
		return d.RemoveLineItem(index)
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.reply(w, r, http.StatusOK, d)
}

// Commit: POST /draft/commit numbers and stores the draft, then resets the editor.
func (h *DraftHandler) Commit(w http.ResponseWriter, r *http.Request) {
	doc, err := h.ws.Commit(r.Context())
	persistErr, err := splitPersistence(err)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, envelope(r, map[string]any{"document": doc, "total": doc.Total()}, persistErr))
		return
	}
	http.Redirect(w, r, "/documents/"+doc.ID+"/preview", http.StatusSeeOther)
}

func (h *DraftHandler) index(w http.ResponseWriter, r *http.Request) (int, bool) {
	v := validation.Violations{}
	index := validation.Index("index", chi.URLParam(r, "index"), v)
	if !v.Empty() {
		writeViolations(w, v)
		return 0, false
	}
	return index, true
}

// applyItemFields sets each field of one item; the first failure aborts the edit.
func applyItemFields(d services.Draft, index int, fields map[string]string) (services.Draft, error) {
	if len(fields) == 0 && (index < 0 || index >= len(d.Items)) {
		return d, services.ErrIndexOutOfRange
	}
	for name, value := range fields {
		var err error
		if d, err = d.UpdateLineItem(index, strings.TrimSpace(name), value); err != nil {
			return d, err
		}
	}
	return d, nil
}
