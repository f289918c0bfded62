// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"autosite/internal/models"
)

// defaultLogLimit is how many activity entries GET /api/logs returns
// without ?limit=.
const defaultLogLimit = 20

// GetSettings returns the current settings document.
func (a *API) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := a.settings.Load(r.Context())
	if err != nil {
		slog.Error("load settings", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// PutSettings replaces the settings document and re-arms the scheduler so
// a new deployment time or automation flag takes effect immediately.
// Fields missing from the body keep their current values.
func (a *API) PutSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := a.settings.Load(r.Context())
	if err != nil {
		slog.Error("load settings", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}

	if err := decodeJSON(w, r, &settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid settings: "+err.Error())
		return
	}
	if msg := validateSettings(settings); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	if err := a.settings.Save(r.Context(), settings); err != nil {
		slog.Error("save settings", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}
	a.activity.Log(r.Context(), models.LogInfo, "Settings updated", "Deployment time: "+settings.DeploymentTime)
	a.scheduler.Reload(r.Context())

	writeJSON(w, http.StatusOK, settings)
}

// Logs returns the newest activity entries, ?limit= of them (0 for all).
func (a *API) Logs(w http.ResponseWriter, r *http.Request) {
	limit, msg := parseLimit(r.URL.Query().Get("limit"), defaultLogLimit)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	entries, err := a.activity.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("read activity log", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read activity log")
		return
	}
	if entries == nil {
		entries = []models.LogEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// ClearLogs empties the activity log.
func (a *API) ClearLogs(w http.ResponseWriter, r *http.Request) {
	if err := a.activity.Clear(r.Context()); err != nil {
		slog.Error("clear activity log", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear activity log")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
