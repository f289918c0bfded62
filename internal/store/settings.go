// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"autosite/internal/kv"
	"autosite/internal/models"
)

// SettingsStore manages the systemSettings document.
type SettingsStore struct {
	kv kv.Store
}

// NewSettingsStore returns a new SettingsStore backed by the given store.
func NewSettingsStore(s kv.Store) *SettingsStore {
	return &SettingsStore{kv: s}
}

// Load returns the stored settings decoded on top of the defaults, so
// fields missing from the stored document keep their default values. A
// stored categories map replaces the default map as a whole; only an
// absent or null map falls back to the defaults. A corrupt document is
// logged and the defaults are returned.
func (s *SettingsStore) Load(ctx context.Context) (models.Settings, error) {
	settings := models.DefaultSettings()

	raw, ok, err := s.kv.Get(ctx, KeySettings)
	if err != nil {
		return settings, fmt.Errorf("load settings: %w", err)
	}
	if !ok || raw == "" {
		return settings, nil
	}

	// json merges into a non-nil map, which would re-enable categories
	// the stored map leaves out.
	settings.Categories = nil
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		slog.Warn("stored settings are unreadable, using defaults", "error", err)
		return models.DefaultSettings(), nil
	}
	if settings.Categories == nil {
		settings.Categories = models.DefaultSettings().Categories
	}
	return settings, nil
}

// Save validates and stores the settings document.
func (s *SettingsStore) Save(ctx context.Context, settings models.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	raw, err := encodeJSON(KeySettings, settings)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, KeySettings, raw); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
