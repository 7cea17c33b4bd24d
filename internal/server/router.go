// Package server wires the HTTP routes and middleware stack.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"github.com/diewo77/go-devis/auth"
	"github.com/diewo77/go-devis/internal/config"
	"github.com/diewo77/go-devis/internal/handlers"
	"github.com/diewo77/go-devis/internal/middleware"
	"github.com/diewo77/go-devis/internal/services"
	"github.com/diewo77/go-devis/view"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(ws *services.Workspace, cfg *config.Config, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	view.SetLangResolver(middleware.LangFrom)
	view.SetSessionResolver(func(*http.Request) bool { return ws.SessionActive() })

	sess := handlers.NewSessionHandler(ws, logger)
	dash := handlers.NewDashboardHandler(ws, logger)
	prof := handlers.NewProfileHandler(ws, logger, int64(cfg.Storage.MaxBytes))
	draft := handlers.NewDraftHandler(ws, logger)
	docs := handlers.NewDocumentHandler(ws, logger)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(zapLoggerMiddleware(logger))
	r.Use(secureHeaders(cfg, logger))
	if cfg.App.RateLimit > 0 {
		r.Use(httprate.Limit(cfg.App.RateLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
	}
	r.Use(middleware.Prefs(cfg.App.DefaultLang))

	r.Get("/healthz", handlers.Health(ws))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		if ws.SessionActive() {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})
	r.Get("/login", sess.Page)
	r.Post("/login", sess.Login)
	r.Post("/logout", sess.Logout)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSession(ws))

		r.Get("/dashboard", dash.Show)

		r.Get("/profile", prof.Show)
		r.Patch("/profile", prof.Update)
		r.Post("/profile/logo", prof.UploadLogo)

		r.Route("/draft", func(r chi.Router) {
			r.Get("/", draft.Show)
			r.Post("/", draft.Start)
			r.Patch("/", draft.Update)
			r.Post("/items", draft.AddItem)
			r.Patch("/items/{index}", draft.UpdateItem)
			r.Delete("/items/{index}", draft.RemoveItem)
			r.Post("/commit", draft.Commit)
		})

		r.Get("/quotes", docs.Quotes)
		r.Get("/invoices", docs.Invoices)
		r.Get("/documents/{id}", docs.Show)
		r.Get("/documents/{id}/preview", docs.Preview)
	})

	logger.Info("router initialized")
	return r
}

func secureHeaders(cfg *config.Config, logger *zap.Logger) func(http.Handler) http.Handler {
	sm := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		// inline styles and the print button live in the templates; logos are data: URIs.
		ContentSecurityPolicy: "default-src 'self'; img-src 'self' data:; style-src 'self' 'unsafe-inline'; script-src 'unsafe-inline'",
		SSLRedirect:           cfg.IsProduction(),
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:         !cfg.IsProduction(),
	})
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := sm.Process(w, r); err != nil {
				logger.Warn("secure headers blocked request", zap.Error(err))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func zapLoggerMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info("request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("client_ip", r.RemoteAddr),
				zap.String("request_id", chimw.GetReqID(r.Context())))
		})
	}
}
