// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains of the
// PageCraft API. Routes are grouped by resource, with authentication and
// admin gates applied per group.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"pagecraft/internal/handlers"
	"pagecraft/internal/middleware"
)

// Handlers bundles the handler groups mounted by New.
type Handlers struct {
	Users   *handlers.Users
	Content *handlers.Content
	Stats   *handlers.Stats
	Admin   *handlers.Admin
}

// Options tunes the global middleware.
type Options struct {
	// CORSOrigins lists allowed browser origins. Empty allows any origin.
	CORSOrigins []string
	// HSTS enables the Strict-Transport-Security header.
	HSTS bool
	// AuthLimiter throttles registration and login. Nil disables it.
	AuthLimiter middleware.Limiter
	// TrustProxy takes the client address from forwarding headers. Only
	// set it when a proxy that overwrites those headers fronts the server.
	TrustProxy bool
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(id middleware.Identifier, h Handlers, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders(opts.HSTS))
	r.Use(cors.Handler(corsOptions(opts.CORSOrigins)))
	r.Use(middleware.Authenticate(id))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteMessage(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/", rootHandler)
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if opts.AuthLimiter != nil {
					r.Use(middleware.RateLimit(opts.AuthLimiter))
				}
				r.Post("/", h.Users.Register)
				r.Post("/login", h.Users.Login)
			})
			r.With(middleware.RequireAuth).Get("/me", h.Users.Me)
		})

		// Content reads are public; writes need a caller.
		r.Route("/content", func(r chi.Router) {
			r.Get("/", h.Content.List)
			r.Get("/{id}", h.Content.Get)
			r.Get("/{id}/preview", h.Content.Preview)
			r.Get("/{id}/export", h.Content.Export)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/", h.Content.Create)
				r.Put("/{id}", h.Content.Update)
				r.Delete("/{id}", h.Content.Delete)
			})
		})

		r.With(middleware.RequireAuth).Get("/stats", h.Stats.Dashboard)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.RequireAdmin)

			r.Get("/stats", h.Stats.Admin)
			r.Get("/users", h.Admin.ListUsers)
			r.Put("/users/{id}/role", h.Admin.SetRole)
			r.Delete("/users/{id}", h.Admin.DeleteUser)
		})
	})

	return r
}

// corsOptions allows bearer-authenticated calls from the given origins.
// No cookies are involved, so credentials stay disabled.
func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}
}

// rootHandler answers the bare API root.
func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("API is running..."))
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
