// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package kv defines the key-value contract the registry, activity log and
// settings source persist through, with Valkey, PostgreSQL and in-memory
// implementations. Values are opaque strings; callers store JSON text.
package kv

import "context"

// Store is a string key-value store.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent;
	// err is reserved for backend failures.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set writes a single key.
	Set(ctx context.Context, key, value string) error

	// SetMany writes every entry as one atomic unit: readers observe either
	// all of the new values or none of them.
	SetMany(ctx context.Context, entries map[string]string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
