// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/danielhkuo/regdesk/cliparse"
	"github.com/danielhkuo/regdesk/handlers"
	"github.com/danielhkuo/regdesk/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)

	// Initialize handlers
	wizardHandler := handlers.NewWizardHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Registration wizard (public)
	r.Route("/drafts", func(r chi.Router) {
		r.Post("/", wizardHandler.CreateDraft)
		r.Route("/{key}", func(r chi.Router) {
			r.Get("/", wizardHandler.GetDraft)
			r.Patch("/", wizardHandler.UpdateDraft)
			r.Delete("/", wizardHandler.DiscardDraft)
			r.Post("/next", wizardHandler.Next)
			r.Post("/back", wizardHandler.Back)
			r.Post("/submit", wizardHandler.Submit)
		})
	})

	// Admin dashboard
	if cfg.AdminKey != "" {
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(cfg.AdminKey))
			r.Get("/registrations", adminHandler.ListRegistrations)
			r.Get("/registrations/{id}", adminHandler.GetRegistration)
			r.Get("/summary", adminHandler.Summary)
			r.Get("/export", adminHandler.Export)
		})
	} else {
		zap.L().Warn("admin routes disabled: no admin key configured")
	}

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("regdesk API v1"))
	})

	return middleware.CORS(r)
}
