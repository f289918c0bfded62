// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"autosite/internal/catalog"
	"autosite/internal/models"
)

// catalogEntry is one category of GET /api/catalog.
type catalogEntry struct {
	Category models.Category         `json:"category"`
	Ideas    []models.IdeaDescriptor `json:"ideas"`
}

// Catalog lists every idea the generator can pick, grouped by category.
func (a *API) Catalog(w http.ResponseWriter, r *http.Request) {
	var out []catalogEntry
	for _, c := range catalog.Categories() {
		out = append(out, catalogEntry{Category: c, Ideas: catalog.Ideas(c)})
	}
	writeJSON(w, http.StatusOK, out)
}

// previewRequest names a catalog idea, or describes a custom one when
// Description is set.
type previewRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    models.Category `json:"category"`
	Features    []string        `json:"features"`
}

// previewResponse carries the synthesized files keyed by file name.
type previewResponse struct {
	Idea  models.IdeaDescriptor `json:"idea"`
	Files map[string]string     `json:"files"`
}

// Preview synthesizes the artifacts for an idea without deploying or
// recording anything.
func (a *API) Preview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid preview request: "+err.Error())
		return
	}

	idea, status, msg := resolvePreviewIdea(req)
	if msg != "" {
		writeError(w, status, msg)
		return
	}

	artifacts, err := a.engine.Synthesize(idea)
	if err != nil {
		slog.Error("preview synthesis", "idea", idea.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to synthesize preview")
		return
	}
	writeJSON(w, http.StatusOK, previewResponse{Idea: idea, Files: artifacts.Files()})
}

// resolvePreviewIdea turns a preview request into a descriptor. A request
// with only a name must match a catalog idea.
func resolvePreviewIdea(req previewRequest) (models.IdeaDescriptor, int, string) {
	if req.Description == "" {
		if msg := validateIdeaName(req.Name); msg != "" {
			return models.IdeaDescriptor{}, http.StatusUnprocessableEntity, msg
		}
		idea, ok := catalog.Find(req.Name)
		if !ok {
			return models.IdeaDescriptor{}, http.StatusNotFound, "no catalog idea named " + req.Name
		}
		return idea, 0, ""
	}

	idea := models.IdeaDescriptor{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Features:    req.Features,
	}
	if msg := validateIdea(idea); msg != "" {
		return models.IdeaDescriptor{}, http.StatusUnprocessableEntity, msg
	}
	return idea, 0, ""
}
