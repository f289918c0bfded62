// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"autosite/internal/models"
	"autosite/internal/store"
)

// ListSites returns the registry, optionally filtered by ?category= and
// ordered by ?sort= (newest, oldest, name, visits).
func (a *API) ListSites(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sort, err := store.ParseSortOrder(q.Get("sort"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	category, msg := parseCategory(q.Get("category"))
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	sites, err := a.sites.List(r.Context(), store.ListOptions{Category: category, Sort: sort})
	if err != nil {
		slog.Error("list sites", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list sites")
		return
	}
	if sites == nil {
		sites = []models.Site{}
	}
	writeJSON(w, http.StatusOK, sites)
}

// GetSite returns one record.
func (a *API) GetSite(w http.ResponseWriter, r *http.Request) {
	site, err := a.sites.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.siteError(w, "get site", err)
		return
	}
	writeJSON(w, http.StatusOK, site)
}

// VisitSite counts one visit of a deployed site and returns the record.
func (a *API) VisitSite(w http.ResponseWriter, r *http.Request) {
	site, err := a.sites.RecordVisit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.siteError(w, "record visit", err)
		return
	}
	writeJSON(w, http.StatusOK, site)
}

// DeleteSite removes a record and, when backups are configured, its
// archived bundle. A failed archive cleanup is logged but does not fail
// the request.
func (a *API) DeleteSite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.sites.Delete(r.Context(), id); err != nil {
		a.siteError(w, "delete site", err)
		return
	}

	if a.archive != nil {
		if err := a.archive.Remove(r.Context(), id); err != nil {
			slog.Warn("failed to remove site archive", "id", id, "error", err)
		}
	}
	slog.Info("site deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// Stats returns the dashboard aggregates.
func (a *API) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.sites.Stats(r.Context())
	if err != nil {
		slog.Error("site stats", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (a *API) siteError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, store.ErrSiteNotFound) {
		writeError(w, http.StatusNotFound, "site not found")
		return
	}
	slog.Error(op, "error", err)
	writeError(w, http.StatusInternalServerError, "failed to access registry")
}
