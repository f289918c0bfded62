// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"log/slog"

	"autosite/internal/kv"
	"autosite/internal/models"
)

// Seed writes the default settings document and the initial activity entry
// when they don't exist yet. It is a no-op on an already used store.
func Seed(ctx context.Context, s kv.Store) error {
	if _, ok, err := s.Get(ctx, KeySettings); err != nil {
		return fmt.Errorf("seed check settings: %w", err)
	} else if !ok {
		if err := NewSettingsStore(s).Save(ctx, models.DefaultSettings()); err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
		slog.Info("default settings seeded")
	}

	if _, ok, err := s.Get(ctx, KeyLogs); err != nil {
		return fmt.Errorf("seed check activity log: %w", err)
	} else if !ok {
		_, err := NewActivityStore(s).Add(ctx, models.LogInfo, "System initialized", "Autonomous website generator is ready")
		if err != nil {
			return fmt.Errorf("seed activity log: %w", err)
		}
	}
	return nil
}
