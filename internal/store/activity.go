// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// activity.go keeps the user-facing activity log: a bounded, newest-first
// list of what the scheduler did and why it failed.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"autosite/internal/kv"
	"autosite/internal/models"
)

// ActivityStore handles the systemLogs key.
type ActivityStore struct {
	kv  kv.Store
	mu  sync.Mutex
	now func() time.Time
}

// NewActivityStore creates a new ActivityStore.
func NewActivityStore(s kv.Store) *ActivityStore {
	return &ActivityStore{kv: s, now: time.Now}
}

// Add prepends an entry and trims the log to models.MaxLogEntries.
func (s *ActivityStore) Add(ctx context.Context, level models.LogLevel, message, details string) (models.LogEntry, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return models.LogEntry{}, fmt.Errorf("log entry id: %w", err)
	}
	entry := models.LogEntry{
		ID:        id.String(),
		Timestamp: s.now().UTC(),
		Level:     level,
		Message:   message,
		Details:   details,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		return models.LogEntry{}, err
	}
	entries = append([]models.LogEntry{entry}, entries...)
	if len(entries) > models.MaxLogEntries {
		entries = entries[:models.MaxLogEntries]
	}
	if err := s.save(ctx, entries); err != nil {
		return models.LogEntry{}, err
	}
	return entry, nil
}

// Log is Add without an error return. Activity logging is best-effort: a
// failure is reported through slog and otherwise ignored.
func (s *ActivityStore) Log(ctx context.Context, level models.LogLevel, message, details string) {
	if _, err := s.Add(ctx, level, message, details); err != nil {
		slog.Warn("failed to write activity log",
			"level", level,
			"message", message,
			"error", err,
		)
	}
}

// Recent returns up to limit entries, newest first. limit <= 0 returns all.
func (s *ActivityStore) Recent(ctx context.Context, limit int) ([]models.LogEntry, error) {
	entries, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Clear empties the log.
func (s *ActivityStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, []models.LogEntry{})
}

func (s *ActivityStore) load(ctx context.Context) ([]models.LogEntry, error) {
	var entries []models.LogEntry
	if _, err := getJSON(ctx, s.kv, KeyLogs, &entries); err != nil {
		return nil, fmt.Errorf("load activity log: %w", err)
	}
	return entries, nil
}

func (s *ActivityStore) save(ctx context.Context, entries []models.LogEntry) error {
	raw, err := encodeJSON(KeyLogs, entries)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, KeyLogs, raw); err != nil {
		return fmt.Errorf("save activity log: %w", err)
	}
	return nil
}
