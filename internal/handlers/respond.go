package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/diewo77/go-devis/httpx"
	"github.com/diewo77/go-devis/i18n"
	"github.com/diewo77/go-devis/internal/middleware"
	"github.com/diewo77/go-devis/internal/models"
	"github.com/diewo77/go-devis/internal/services"
	"github.com/diewo77/go-devis/internal/storage"
	"github.com/diewo77/go-devis/validation"
	"github.com/diewo77/go-devis/view"
)

// envelope adds the persistence outcome to a JSON body. A failed save never fails the
// request: the change is applied in memory and the client is told it was not stored.
func envelope(r *http.Request, body map[string]any, persistErr error) map[string]any {
	if body == nil {
		body = map[string]any{}
	}
	body["persisted"] = persistErr == nil
	if persistErr != nil {
		body["warning"] = i18n.T(middleware.LangFrom(r), "persistence_failed")
	}
	return body
}

// splitPersistence separates a non-fatal save failure from a real error.
func splitPersistence(err error) (persistErr, fatal error) {
	if err == nil {
		return nil, nil
	}
	if storage.IsPersistenceError(err) {
		return err, nil
	}
	return nil, err
}

// writeError maps domain errors to status codes and snake_case codes.
func writeError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	lang := middleware.LangFrom(r)
	status, code := http.StatusInternalServerError, "internal_error"
	switch {
	case errors.Is(err, services.ErrIndexOutOfRange):
		status, code = http.StatusBadRequest, "index_out_of_range"
	case errors.Is(err, services.ErrUnknownField):
		status, code = http.StatusBadRequest, "unknown_field"
	case errors.Is(err, services.ErrInvalidValue):
		status, code = http.StatusBadRequest, "invalid_value"
	case errors.Is(err, models.ErrUnknownKind):
		status, code = http.StatusBadRequest, "unknown_document_kind"
	case errors.Is(err, services.ErrNotAnImage):
		status, code = http.StatusUnsupportedMediaType, "not_an_image"
	case storage.IsPersistenceError(err):
		status, code = http.StatusServiceUnavailable, "persistence_failed"
	}
	if status == http.StatusInternalServerError {
		log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, status, code, map[string]string{"message": i18n.T(lang, code)})
		return
	}
	http.Error(w, i18n.T(lang, code), status)
}

func writeViolations(w http.ResponseWriter, v validation.Violations) {
	httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
}

func render(w http.ResponseWriter, r *http.Request, log *zap.Logger, name string, data map[string]any) {
	if err := view.Render(w, r, name, data); err != nil {
		log.Error("render failed", zap.String("template", name), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// stringify turns a decoded JSON value into the text form the draft editor parses.
func stringify(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	default:
		return "", false
	}
}

// decodeFields reads a flat JSON object, or form values for HTML clients.
func decodeFields(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	out := map[string]string{}
	if !httpx.WantsJSON(r) {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		for k := range r.PostForm {
			out[k] = r.PostForm.Get(k)
		}
		return out, nil
	}
	raw := map[string]any{}
	if err := httpx.Decode(w, r, &raw); err != nil {
		return nil, err
	}
	for k, v := range raw {
		s, ok := stringify(v)
		if !ok {
			return nil, services.ErrInvalidValue
		}
		out[k] = s
	}
	return out, nil
}
