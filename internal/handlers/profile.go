package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/diewo77/go-devis/httpx"
	"github.com/diewo77/go-devis/internal/services"
	"github.com/diewo77/go-devis/validation"
)

type ProfileHandler struct {
	ws        *services.Workspace
	log       *zap.Logger
	maxUpload int64
}

// NewProfileHandler binds the profile routes. maxUpload bounds logo uploads.
func NewProfileHandler(ws *services.Workspace, log *zap.Logger, maxUpload int64) *ProfileHandler {
	return &ProfileHandler{ws: ws, log: log, maxUpload: maxUpload}
}

// Show: GET /profile
func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	p := h.ws.Profile()
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, p)
		return
	}
	render(w, r, h.log, "profile.html", map[string]any{"Profile": p})
}

// Update: PATCH /profile with {"field": "value", ...}
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(w, r)
	if err != nil {
		if errors.Is(err, services.ErrInvalidValue) {
			writeError(w, r, h.log, err)
			return
		}
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	p, err := h.ws.UpdateProfile(r.Context(), fields)
	h.reply(w, r, p, err)
}

// UploadLogo: POST /profile/logo, multipart field "logo"
func (h *ProfileHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	file, _, err := r.FormFile("logo")
	if err != nil {
		v := validation.Violations{}
		validation.Required("logo", "", v)
		writeViolations(w, v)
		return
	}
	defer file.Close()
	uri, err := services.EncodeLogo(file)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	p, err := h.ws.SetLogo(r.Context(), uri)
	h.reply(w, r, p, err)
}

func (h *ProfileHandler) reply(w http.ResponseWriter, r *http.Request, p any, err error) {
	persistErr, err := splitPersistence(err)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, envelope(r, map[string]any{"profile": p}, persistErr))
		return
	}
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}
