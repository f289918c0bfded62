// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides the typed views over the key-value store: the
// generated-site registry, the activity log and the runtime settings.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"autosite/internal/kv"
)

// Persisted keys. The names are shared with earlier deployments of the
// dashboard and must not change.
const (
	KeySites      = "generatedWebsites"
	KeyTotalSites = "totalSites"
	KeyLastRun    = "lastRun"
	KeySettings   = "systemSettings"
	KeyLogs       = "systemLogs"
)

// lastRunLayout matches JavaScript's Date.prototype.toISOString.
const lastRunLayout = "2006-01-02T15:04:05.000Z07:00"

// getJSON decodes the value at key into dst. It reports false, leaving dst
// untouched, when the key is absent.
func getJSON(ctx context.Context, s kv.Store, key string, dst any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok || raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func encodeJSON(key string, v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", key, err)
	}
	return string(b), nil
}
