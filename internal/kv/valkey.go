// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written to Valkey.
const DefaultPrefix = "autosite:"

// Valkey is a Store backed by a Valkey (Redis-compatible) server.
type Valkey struct {
	client *redis.Client
	prefix string
}

// NewValkey wraps client. Keys are stored as prefix+key.
func NewValkey(client *redis.Client, prefix string) *Valkey {
	return &Valkey{client: client, prefix: prefix}
}

// Get implements Store.
func (v *Valkey) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := v.client.Get(ctx, v.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("valkey get %s: %w", key, err)
	}
	return val, true, nil
}

// Set implements Store. Keys never expire.
func (v *Valkey) Set(ctx context.Context, key, value string) error {
	if err := v.client.Set(ctx, v.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("valkey set %s: %w", key, err)
	}
	return nil
}

// SetMany implements Store with a single MSET, which Valkey applies
// atomically.
func (v *Valkey) SetMany(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}
	pairs := make([]any, 0, len(entries)*2)
	for k, val := range entries {
		pairs = append(pairs, v.prefix+k, val)
	}
	if err := v.client.MSet(ctx, pairs...).Err(); err != nil {
		return fmt.Errorf("valkey mset: %w", err)
	}
	return nil
}

// Delete implements Store.
func (v *Valkey) Delete(ctx context.Context, key string) error {
	if err := v.client.Del(ctx, v.prefix+key).Err(); err != nil {
		return fmt.Errorf("valkey del %s: %w", key, err)
	}
	return nil
}

// keys lists every key under the prefix, with the prefix stripped. It walks
// the keyspace with SCAN so large databases are not blocked.
func (v *Valkey) keys(ctx context.Context) ([]string, error) {
	var (
		cursor uint64
		keys   []string
	)
	for {
		batch, next, err := v.client.Scan(ctx, cursor, v.prefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("valkey scan: %w", err)
		}
		for _, k := range batch {
			keys = append(keys, k[len(v.prefix):])
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return keys, nil
}
