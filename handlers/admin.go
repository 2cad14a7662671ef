// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/danielhkuo/regdesk/cliparse"
	"github.com/danielhkuo/regdesk/db"
	"github.com/danielhkuo/regdesk/export"
	"github.com/danielhkuo/regdesk/middleware"
	"github.com/danielhkuo/regdesk/models"
	"github.com/danielhkuo/regdesk/stats"
)

type AdminHandler struct {
	registrations *db.Registrations
	cfg           cliparse.Config
	now           func() time.Time
}

func NewAdminHandler(conn *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{
		registrations: db.NewRegistrations(conn),
		cfg:           cfg,
		now:           time.Now,
	}
}

func (h *AdminHandler) storeContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.cfg.RequestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
}

// newestFirst loads every registration, latest submission first
func (h *AdminHandler) newestFirst(r *http.Request) ([]models.StoredRegistration, error) {
	ctx, cancel := h.storeContext(r)
	defer cancel()
	return h.registrations.ListOrderedBy(ctx, db.FieldSubmittedAt, db.Desc)
}

// ListRegistrations handles GET /admin/registrations
func (h *AdminHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.newestFirst(r)
	if err != nil {
		zap.L().Error("failed to list registrations", zap.Error(err))
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Failed to load registrations")
		return
	}

	now := h.now()
	items := make([]models.RegistrationListItem, 0, len(regs))
	for _, reg := range regs {
		items = append(items, models.RegistrationListItem{
			ID:            reg.ID,
			TeamName:      reg.TeamName,
			PSNumber:      reg.PSNumber,
			LeaderName:    reg.Leader.Name,
			LeaderEmail:   reg.Leader.Email,
			LeaderContact: reg.Leader.Contact,
			FemaleMembers: reg.TeamStats.FemaleMembers,
			Willingness:   reg.Willingness,
			SubmittedAt:   reg.SubmittedAt,
			SubmittedAgo:  humanize.RelTime(reg.SubmittedAt, now, "ago", "from now"),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListRegistrationsResponse{
		Registrations: items,
		Summary:       stats.Dashboard(regs),
	})
}

// GetRegistration handles GET /admin/registrations/{id}
func (h *AdminHandler) GetRegistration(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	reg, err := h.registrations.Get(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Registration not found")
		return
	}
	if err != nil {
		zap.L().Error("failed to load registration", zap.String("id", id), zap.Error(err))
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Failed to load registration")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, reg)
}

// Summary handles GET /admin/summary
func (h *AdminHandler) Summary(w http.ResponseWriter, r *http.Request) {
	regs, err := h.newestFirst(r)
	if err != nil {
		zap.L().Error("failed to load registrations for summary", zap.Error(err))
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Failed to load registrations")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats.Dashboard(regs))
}

// Export handles GET /admin/export
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	regs, err := h.newestFirst(r)
	if err != nil {
		zap.L().Error("failed to load registrations for export", zap.Error(err))
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Failed to export data")
		return
	}

	// Render fully before writing headers so a failure can still be reported
	var buf bytes.Buffer
	if err := export.Write(&buf, regs, time.Local); err != nil {
		zap.L().Error("failed to render export", zap.Error(err))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to export data")
		return
	}

	filename := export.Filename(h.cfg.EventName, h.now())
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		zap.L().Warn("export download interrupted", zap.Error(err))
		return
	}

	zap.L().Info("registrations exported",
		zap.Int("teams", len(regs)),
		zap.String("filename", filename))
}
