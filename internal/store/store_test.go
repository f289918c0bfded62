// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

// Unit tests run on the in-memory backend; the Valkey round trip is skipped
// when no server is reachable.

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"autosite/internal/kv"
	"autosite/internal/models"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testValkey returns a prefixed Valkey store on DB 15 and removes the keys
// it wrote on cleanup. Skips if Valkey is unavailable.
func testValkey(t *testing.T) *kv.Valkey {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	prefix := fmt.Sprintf("autosite-test-%d:", time.Now().UnixNano())
	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, prefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})
	return kv.NewValkey(client, prefix)
}

var baseTime = time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)

// testSite builds a deployed record created n hours after baseTime.
func testSite(n int, name string, category models.Category) *models.Site {
	return &models.Site{
		ID:           fmt.Sprintf("site-%d", n),
		Name:         name,
		Description:  name + " description",
		Category:     category,
		URL:          fmt.Sprintf("https://ai-gen-%d.github.io", n),
		CreatedAt:    baseTime.Add(time.Duration(n) * time.Hour),
		Status:       models.SiteStatusDeployed,
		Technologies: models.Technologies,
		Stats:        models.SiteStats{Visits: 0, Uptime: models.DefaultUptime},
	}
}
