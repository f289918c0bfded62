// Package router sets up the routes and middleware chains of the admin
// API. Read-only routes are open; routes that change state or start work
// sit behind the bearer token, and the expensive ones are rate limited.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"autosite/internal/handlers"
	"autosite/internal/middleware"
)

// Options configures New. Limiter may be nil to disable rate limiting.
type Options struct {
	API       *handlers.API
	TokenHash string
	Limiter   *middleware.RateLimiter
}

// New creates the chi router with every route and middleware wired up.
func New(opts Options) chi.Router {
	api := opts.API
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", api.Status)
		r.Get("/sites", api.ListSites)
		r.Get("/sites/{id}", api.GetSite)
		r.Get("/stats", api.Stats)
		r.Get("/settings", api.GetSettings)
		r.Get("/logs", api.Logs)
		r.Get("/catalog", api.Catalog)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireToken(opts.TokenHash))

			r.Post("/sites/{id}/visit", api.VisitSite)
			r.Delete("/sites/{id}", api.DeleteSite)
			r.Put("/settings", api.PutSettings)
			r.Delete("/logs", api.ClearLogs)

			r.Group(func(r chi.Router) {
				if opts.Limiter != nil {
					r.Use(opts.Limiter.Middleware)
				}
				r.Post("/run", api.Run)
				r.Post("/preview", api.Preview)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"error":"not found"}`)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, `{"error":"method not allowed"}`)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, `{"status":"ok"}`)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
