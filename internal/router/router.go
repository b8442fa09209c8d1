// Package router sets up all HTTP routes and middleware chains for the
// websmith server. Every surface — API, preview, export, websocket — runs
// behind the same session middleware, since the session cookie is what
// ties a browser to its workspace.
package router

import (
	"github.com/go-chi/chi/v5"

	"websmith/internal/handlers"
	"websmith/internal/middleware"
	"websmith/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and routes wired up.
func New(sessionStore *session.Store, api *handlers.API) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.EnsureSession(sessionStore))

	r.Get("/health", api.Health)

	// JSON API.
	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", api.Generate)
		r.Post("/prompt", api.Prompt)

		r.Route("/code", func(r chi.Router) {
			r.Get("/", api.Code)
			r.Put("/", api.UpdateCode)
			r.Post("/clear", api.ClearCode)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", api.Settings)
			r.Put("/", api.UpdateSettings)
		})

		r.Route("/snapshots", func(r chi.Router) {
			r.Get("/", api.Snapshots)
			r.Get("/{id}", api.Snapshot)
			r.Post("/{id}/restore", api.RestoreSnapshot)
		})

		r.Post("/preview/refresh", api.RefreshPreview)
		r.Get("/templates", api.Templates)
		r.Get("/examples", api.Examples)
	})

	// Preview surfaces. Resources are token-addressed; the bare /preview
	// path resolves the session's current resource.
	r.Get("/preview", api.Preview)
	r.Get("/preview/{token}", api.PreviewResource)
	r.Get("/ws/preview", api.PreviewSocket)

	// Export surface.
	r.Route("/export", func(r chi.Router) {
		r.Get("/zip", api.ExportZip)
		r.Get("/source", api.ExportSource)
		r.Get("/document", api.ExportDocument)
		r.Get("/qr", api.ExportQR)
		r.Post("/publish", api.Publish)
		r.Post("/unpublish", api.Unpublish)
	})

	return r
}
