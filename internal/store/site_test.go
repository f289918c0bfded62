// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"autosite/internal/kv"
	"autosite/internal/models"
)

func TestSiteStoreAppendIsMonotonic(t *testing.T) {
	ctx := context.Background()
	s := NewSiteStore(kv.NewMemory())

	const n = 5
	for i := 1; i <= n; i++ {
		if err := s.Append(ctx, testSite(i, "Site", models.CategoryTools)); err != nil {
			t.Fatalf("Append #%d: %v", i, err)
		}
	}

	total, err := s.Total(ctx)
	if err != nil {
		t.Fatalf("Total: %v", err)
	}
	if total != n {
		t.Errorf("total: got %d, want %d", total, n)
	}

	sites, err := s.List(ctx, ListOptions{Sort: SortNewest})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sites) != n {
		t.Fatalf("len: got %d, want %d", len(sites), n)
	}
	if sites[0].ID != "site-5" {
		t.Errorf("newest first: got %s, want site-5", sites[0].ID)
	}

	last, ok, err := s.LastRun(ctx)
	if err != nil || !ok {
		t.Fatalf("LastRun: ok=%v err=%v", ok, err)
	}
	if !last.Equal(testSite(5, "", "").CreatedAt) {
		t.Errorf("lastRun: got %v, want %v", last, testSite(5, "", "").CreatedAt)
	}
}

// TestSiteStorePersistedLayout checks the raw key values other readers of
// the store depend on.
func TestSiteStorePersistedLayout(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	s := NewSiteStore(mem)

	if err := s.Append(ctx, testSite(1, "First", models.CategoryGames)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append(ctx, testSite(2, "Second", models.CategoryGames)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	raw, _, _ := mem.Get(ctx, KeySites)
	if strings.Index(raw, "site-2") > strings.Index(raw, "site-1") {
		t.Errorf("generatedWebsites should be stored newest first: %s", raw)
	}
	total, _, _ := mem.Get(ctx, KeyTotalSites)
	if total != "2" {
		t.Errorf("totalSites: got %q, want %q", total, "2")
	}
	last, _, _ := mem.Get(ctx, KeyLastRun)
	if last != "2026-03-01T05:00:00.000Z" {
		t.Errorf("lastRun: got %q", last)
	}
}

func TestSiteStoreAppendFailureLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	s := NewSiteStore(mem)

	if err := s.Append(ctx, testSite(1, "Kept", models.CategoryTools)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	boom := errors.New("valkey down")
	mem.FailWrites(boom)
	if err := s.Append(ctx, testSite(2, "Lost", models.CategoryTools)); !errors.Is(err, boom) {
		t.Fatalf("Append: got %v, want %v", err, boom)
	}
	mem.FailWrites(nil)

	total, _ := s.Total(ctx)
	if total != 1 {
		t.Errorf("total: got %d, want 1", total)
	}
	sites, _ := s.List(ctx, ListOptions{})
	if len(sites) != 1 || sites[0].ID != "site-1" {
		t.Errorf("sites: got %+v", sites)
	}
}

func TestSiteStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewSiteStore(kv.NewMemory())

	seed := []*models.Site{
		testSite(1, "Snake Game", models.CategoryGames),
		testSite(2, "password generator", models.CategoryTools),
		testSite(3, "Logo Maker", models.CategoryCreative),
		testSite(4, "Memory Card Game", models.CategoryGames),
	}
	seed[0].Stats.Visits = 10
	seed[2].Stats.Visits = 30
	seed[3].Stats.Visits = 20
	for _, site := range seed {
		if err := s.Append(ctx, site); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	ids := func(sites []models.Site) string {
		var out []string
		for _, s := range sites {
			out = append(out, s.ID)
		}
		return strings.Join(out, ",")
	}

	tests := []struct {
		name string
		opts ListOptions
		want string
	}{
		{name: "default is newest", opts: ListOptions{}, want: "site-4,site-3,site-2,site-1"},
		{name: "newest", opts: ListOptions{Sort: SortNewest}, want: "site-4,site-3,site-2,site-1"},
		{name: "oldest", opts: ListOptions{Sort: SortOldest}, want: "site-1,site-2,site-3,site-4"},
		{name: "name case-insensitive", opts: ListOptions{Sort: SortName}, want: "site-3,site-4,site-2,site-1"},
		{name: "visits", opts: ListOptions{Sort: SortVisits}, want: "site-3,site-4,site-1,site-2"},
		{name: "category filter", opts: ListOptions{Category: models.CategoryGames}, want: "site-4,site-1"},
		{name: "category with sort", opts: ListOptions{Category: models.CategoryGames, Sort: SortOldest}, want: "site-1,site-4"},
		{name: "no matches", opts: ListOptions{Category: models.CategoryProductivity}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(ctx, tt.opts)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if ids(got) != tt.want {
				t.Errorf("got %s, want %s", ids(got), tt.want)
			}
		})
	}

	// List must not reorder the stored list.
	again, _ := s.List(ctx, ListOptions{Sort: SortNewest})
	if ids(again) != "site-4,site-3,site-2,site-1" {
		t.Errorf("stored order changed: %s", ids(again))
	}
}

func TestSiteStoreListSameTimestampKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewSiteStore(kv.NewMemory())

	for _, id := range []string{"first", "second"} {
		site := testSite(1, "Same Second", models.CategoryTools)
		site.ID = id
		if err := s.Append(ctx, site); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	tests := []struct {
		sort SortOrder
		want string
	}{
		{sort: SortNewest, want: "second,first"},
		{sort: SortOldest, want: "first,second"},
	}
	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			got, err := s.List(ctx, ListOptions{Sort: tt.sort})
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			var ids []string
			for _, site := range got {
				ids = append(ids, site.ID)
			}
			if strings.Join(ids, ",") != tt.want {
				t.Errorf("got %s, want %s", strings.Join(ids, ","), tt.want)
			}
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	for _, in := range []string{"", "newest", "oldest", "name", "visits"} {
		if _, err := ParseSortOrder(in); err != nil {
			t.Errorf("ParseSortOrder(%q): %v", in, err)
		}
	}
	if got, _ := ParseSortOrder(""); got != SortNewest {
		t.Errorf("empty sort: got %q, want newest", got)
	}
	if _, err := ParseSortOrder("random"); err == nil {
		t.Error("expected error for unknown sort")
	}
}

func TestSiteStoreStats(t *testing.T) {
	ctx := context.Background()
	s := NewSiteStore(kv.NewMemory())

	empty, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if empty != (models.SiteStatsSummary{}) {
		t.Errorf("empty stats: got %+v", empty)
	}

	a := testSite(1, "A", models.CategoryGames)
	b := testSite(2, "B", models.CategoryGames)
	c := testSite(3, "C", models.CategoryTools)
	c.Status = models.SiteStatusFailed
	c.Stats.Uptime = 90
	for _, site := range []*models.Site{a, b, c} {
		if err := s.Append(ctx, site); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := models.SiteStatsSummary{
		TotalSites:         3,
		DeployedCount:      2,
		DistinctCategories: 2,
		AverageUptime:      96.6,
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSiteStoreVisitAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewSiteStore(kv.NewMemory())
	for i := 1; i <= 3; i++ {
		if err := s.Append(ctx, testSite(i, "S", models.CategoryTools)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	site, err := s.RecordVisit(ctx, "site-2")
	if err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}
	if site.Stats.Visits != 1 {
		t.Errorf("visits: got %d, want 1", site.Stats.Visits)
	}
	stored, _ := s.Get(ctx, "site-2")
	if stored.Stats.Visits != 1 {
		t.Errorf("stored visits: got %d, want 1", stored.Stats.Visits)
	}

	if _, err := s.RecordVisit(ctx, "nope"); !errors.Is(err, ErrSiteNotFound) {
		t.Errorf("RecordVisit unknown: got %v, want ErrSiteNotFound", err)
	}

	if err := s.Delete(ctx, "site-2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "site-2"); !errors.Is(err, ErrSiteNotFound) {
		t.Errorf("Get after delete: got %v, want ErrSiteNotFound", err)
	}
	if err := s.Delete(ctx, "site-2"); !errors.Is(err, ErrSiteNotFound) {
		t.Errorf("second Delete: got %v, want ErrSiteNotFound", err)
	}

	sites, _ := s.List(ctx, ListOptions{})
	if len(sites) != 2 || sites[0].ID != "site-3" || sites[1].ID != "site-1" {
		t.Errorf("remaining: %+v", sites)
	}
	total, _ := s.Total(ctx)
	if total != 3 {
		t.Errorf("delete must not change total: got %d, want 3", total)
	}
}

func TestSiteStoreTolerantReads(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	s := NewSiteStore(mem)

	if n, err := s.Total(ctx); err != nil || n != 0 {
		t.Errorf("empty Total: got (%d, %v)", n, err)
	}
	if _, ok, err := s.LastRun(ctx); ok || err != nil {
		t.Errorf("empty LastRun: ok=%v err=%v", ok, err)
	}

	mem.Set(ctx, KeyTotalSites, "not-a-number")
	if n, err := s.Total(ctx); err != nil || n != 0 {
		t.Errorf("garbage Total: got (%d, %v)", n, err)
	}

	mem.Set(ctx, KeySites, "{broken")
	if _, err := s.List(ctx, ListOptions{}); err == nil {
		t.Error("expected error for corrupt record list")
	}
}

func TestSiteStoreValkey(t *testing.T) {
	ctx := context.Background()
	s := NewSiteStore(testValkey(t))

	for i := 1; i <= 3; i++ {
		if err := s.Append(ctx, testSite(i, "V", models.CategoryCreative)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	total, err := s.Total(ctx)
	if err != nil || total != 3 {
		t.Errorf("Total: got (%d, %v), want 3", total, err)
	}
	sites, err := s.List(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sites) != 3 || sites[0].ID != "site-3" {
		t.Errorf("List: got %+v", sites)
	}
}
