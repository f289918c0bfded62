// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"autosite/internal/models"
)

func TestGetSettingsDefaults(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodGet, "/api/settings", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	got := decode[models.Settings](t, rr)
	if got.DeploymentTime != models.DefaultDeploymentTime {
		t.Errorf("deploymentTime: got %q, want %q", got.DeploymentTime, models.DefaultDeploymentTime)
	}
	if !got.Automation.Enabled {
		t.Error("automation should be enabled by default")
	}
}

func TestPutSettings(t *testing.T) {
	f := newFixture(t)

	body := `{"deploymentTime":"07:30","categories":{"games":false},"automation":{"enabled":false}}`
	rr := f.do(t, http.MethodPut, "/api/settings", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (%s)", rr.Code, rr.Body.String())
	}

	stored, err := f.settings.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if stored.DeploymentTime != "07:30" {
		t.Errorf("deploymentTime: got %q, want 07:30", stored.DeploymentTime)
	}
	if stored.Categories[models.CategoryGames] {
		t.Error("games should be disabled")
	}
	if !stored.Categories[models.CategoryTools] {
		t.Error("tools should keep its previous value")
	}
	if stored.Automation.Enabled {
		t.Error("automation should be disabled")
	}
	if stored.GithubUsername != "ai-website-generator" {
		t.Errorf("githubUsername: got %q, want the default", stored.GithubUsername)
	}
	if f.scheduler.reloads != 1 {
		t.Errorf("reloads: got %d, want 1", f.scheduler.reloads)
	}

	logs, err := f.activity.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(logs) != 1 || logs[0].Message != "Settings updated" {
		t.Errorf("activity: got %+v, want one settings entry", logs)
	}
}

func TestPutSettingsRejected(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{"deploymentTime":`, http.StatusBadRequest},
		{"empty body", ``, http.StatusBadRequest},
		{"unknown field", `{"deployTime":"07:00"}`, http.StatusBadRequest},
		{"bad time", `{"deploymentTime":"25:00"}`, http.StatusUnprocessableEntity},
		{"time without minutes", `{"deploymentTime":"7"}`, http.StatusUnprocessableEntity},
		{"unknown category", `{"categories":{"music":true}}`, http.StatusUnprocessableEntity},
		{"blank username", `{"githubUsername":"  "}`, http.StatusUnprocessableEntity},
		{"long username", fmt.Sprintf(`{"githubUsername":%q}`, strings.Repeat("a", 101)), http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			rr := f.do(t, http.MethodPut, "/api/settings", tt.body)
			if rr.Code != tt.want {
				t.Errorf("status: got %d, want %d (%s)", rr.Code, tt.want, rr.Body.String())
			}
			if f.scheduler.reloads != 0 {
				t.Errorf("rejected settings must not reload the scheduler")
			}
			stored, err := f.settings.Load(context.Background())
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if stored.DeploymentTime != models.DefaultDeploymentTime {
				t.Errorf("stored settings changed: %+v", stored)
			}
		})
	}
}

func TestPutSettingsSaveFailure(t *testing.T) {
	f := newFixture(t)
	f.kv.FailWrites(errors.New("read-only replica"))

	rr := f.do(t, http.MethodPut, "/api/settings", `{"deploymentTime":"08:00"}`)
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rr.Code)
	}
	if f.scheduler.reloads != 0 {
		t.Error("failed save must not reload the scheduler")
	}
}

func TestLogs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 30; i++ {
		f.activity.Log(ctx, models.LogInfo, fmt.Sprintf("entry %d", i), "")
	}

	tests := []struct {
		query string
		want  int
		first string
	}{
		{"", defaultLogLimit, "entry 29"},
		{"?limit=5", 5, "entry 29"},
		{"?limit=0", 30, "entry 29"},
		{"?limit=500", 30, "entry 29"},
	}
	for _, tt := range tests {
		t.Run("limit"+tt.query, func(t *testing.T) {
			rr := f.do(t, http.MethodGet, "/api/logs"+tt.query, "")
			if rr.Code != http.StatusOK {
				t.Fatalf("status: got %d, want 200", rr.Code)
			}
			entries := decode[[]models.LogEntry](t, rr)
			if len(entries) != tt.want {
				t.Errorf("entries: got %d, want %d", len(entries), tt.want)
			}
			if len(entries) > 0 && entries[0].Message != tt.first {
				t.Errorf("first: got %q, want %q", entries[0].Message, tt.first)
			}
		})
	}

	for _, q := range []string{"?limit=-1", "?limit=ten"} {
		if rr := f.do(t, http.MethodGet, "/api/logs"+q, ""); rr.Code != http.StatusBadRequest {
			t.Errorf("%s: got %d, want 400", q, rr.Code)
		}
	}

	if rr := f.do(t, http.MethodDelete, "/api/logs", ""); rr.Code != http.StatusNoContent {
		t.Fatalf("clear: got %d, want 204", rr.Code)
	}
	rr := f.do(t, http.MethodGet, "/api/logs", "")
	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Errorf("after clear: got %s, want []", got)
	}
}
