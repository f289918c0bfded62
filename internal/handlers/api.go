// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON handlers of the admin API. They are
// a thin boundary over the scheduler, the site registry, the activity log
// and the settings document; handlers receive their dependencies through
// the API struct.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"autosite/internal/engine"
	"autosite/internal/scheduler"
	"autosite/internal/store"
)

// maxBodyBytes bounds request bodies read by the API.
const maxBodyBytes = 64 << 10

// Scheduler is the part of the scheduler the API drives.
type Scheduler interface {
	Status() scheduler.Status
	ForceRun() bool
	Reload(ctx context.Context)
}

// ArchiveRemover deletes the backup bundle of a removed site.
type ArchiveRemover interface {
	Remove(ctx context.Context, siteID string) error
}

// Deps are the collaborators of the API. Archive may be nil.
type Deps struct {
	Scheduler Scheduler
	Sites     *store.SiteStore
	Activity  *store.ActivityStore
	Settings  *store.SettingsStore
	Engine    *engine.Engine
	Archive   ArchiveRemover
}

// API groups the admin API handlers.
type API struct {
	scheduler Scheduler
	sites     *store.SiteStore
	activity  *store.ActivityStore
	settings  *store.SettingsStore
	engine    *engine.Engine
	archive   ArchiveRemover
}

// NewAPI creates the handler group.
func NewAPI(d Deps) *API {
	return &API{
		scheduler: d.Scheduler,
		sites:     d.Sites,
		activity:  d.Activity,
		settings:  d.Settings,
		engine:    d.Engine,
		archive:   d.Archive,
	}
}

// statusResponse is the body of GET /api/status.
type statusResponse struct {
	scheduler.Status
	LastRun    *time.Time `json:"lastRun"`
	TotalSites int        `json:"totalSites"`
}

// Status reports the scheduler state together with the registry counters.
func (a *API) Status(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{Status: a.scheduler.Status()}

	total, err := a.sites.Total(r.Context())
	if err != nil {
		slog.Error("status: read total", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read registry")
		return
	}
	resp.TotalSites = total

	last, ok, err := a.sites.LastRun(r.Context())
	if err != nil {
		slog.Error("status: read last run", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read registry")
		return
	}
	if ok {
		resp.LastRun = &last
	}

	writeJSON(w, http.StatusOK, resp)
}

// Run triggers a generation cycle now. It answers 202 when the run was
// started and 409 when one is already in flight.
func (a *API) Run(w http.ResponseWriter, r *http.Request) {
	if !a.scheduler.ForceRun() {
		writeError(w, http.StatusConflict, "generation already in progress")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
}

// writeJSON encodes data as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("encode response", "error", err)
	}
}

// writeError sends {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads a bounded JSON body into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}
