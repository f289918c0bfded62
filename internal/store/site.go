// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"autosite/internal/kv"
	"autosite/internal/models"
)

// ErrSiteNotFound is returned when no record has the requested ID.
var ErrSiteNotFound = errors.New("site not found")

// SortOrder selects the ordering of List.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
	SortName   SortOrder = "name"
	SortVisits SortOrder = "visits"
)

// ParseSortOrder validates a sort name. An empty string means newest.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "":
		return SortNewest, nil
	case SortNewest, SortOldest, SortName, SortVisits:
		return SortOrder(s), nil
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

// ListOptions filters and orders List. A zero Category matches all.
type ListOptions struct {
	Category models.Category
	Sort     SortOrder
}

// SiteStore is the registry of generated sites. It owns three keys: the
// newest-first record list, the total cycle counter and the last-run
// timestamp.
//
// Read-modify-write cycles are serialised by a process-local mutex and the
// final write goes through kv.Store.SetMany, so within one process the three
// keys always move together. Writers in other processes are not coordinated.
type SiteStore struct {
	kv kv.Store
	mu sync.Mutex
}

// NewSiteStore creates a SiteStore over s.
func NewSiteStore(s kv.Store) *SiteStore {
	return &SiteStore{kv: s}
}

// Append records a completed cycle: the site goes to the front of the list,
// the total counter is incremented and lastRun is set to site.CreatedAt.
func (s *SiteStore) Append(ctx context.Context, site *models.Site) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sites, err := s.all(ctx)
	if err != nil {
		return err
	}
	total, err := s.total(ctx)
	if err != nil {
		return err
	}

	sites = append([]models.Site{*site}, sites...)
	list, err := encodeJSON(KeySites, sites)
	if err != nil {
		return err
	}

	err = s.kv.SetMany(ctx, map[string]string{
		KeySites:      list,
		KeyTotalSites: strconv.Itoa(total + 1),
		KeyLastRun:    site.CreatedAt.UTC().Format(lastRunLayout),
	})
	if err != nil {
		return fmt.Errorf("append site: %w", err)
	}

	slog.Debug("site recorded", "id", site.ID, "name", site.Name, "total", total+1)
	return nil
}

// List returns the records matching opts. Newest and oldest follow the
// stored insertion order, not CreatedAt. It never mutates the registry.
func (s *SiteStore) List(ctx context.Context, opts ListOptions) ([]models.Site, error) {
	sites, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Site, 0, len(sites))
	for _, site := range sites {
		if opts.Category == "" || site.Category == opts.Category {
			out = append(out, site)
		}
	}

	switch opts.Sort {
	case SortOldest:
		slices.Reverse(out)
	case SortName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case SortVisits:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Stats.Visits > out[j].Stats.Visits })
	}
	return out, nil
}

// Get returns a single record by ID.
func (s *SiteStore) Get(ctx context.Context, id string) (*models.Site, error) {
	sites, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range sites {
		if sites[i].ID == id {
			return &sites[i], nil
		}
	}
	return nil, ErrSiteNotFound
}

// RecordVisit increments the visit counter of a record and returns it.
func (s *SiteStore) RecordVisit(ctx context.Context, id string) (*models.Site, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sites, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOf(sites, id)
	if idx < 0 {
		return nil, ErrSiteNotFound
	}
	sites[idx].Stats.Visits++

	if err := s.save(ctx, sites); err != nil {
		return nil, err
	}
	site := sites[idx]
	return &site, nil
}

// Delete removes a record. The total counter is left alone: it counts
// cycles, not surviving records.
func (s *SiteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sites, err := s.all(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(sites, id)
	if idx < 0 {
		return ErrSiteNotFound
	}
	sites = append(sites[:idx], sites[idx+1:]...)
	return s.save(ctx, sites)
}

// Stats recomputes the dashboard summary from the full list.
func (s *SiteStore) Stats(ctx context.Context) (models.SiteStatsSummary, error) {
	sites, err := s.all(ctx)
	if err != nil {
		return models.SiteStatsSummary{}, err
	}

	summary := models.SiteStatsSummary{TotalSites: len(sites)}
	if len(sites) == 0 {
		return summary, nil
	}

	categories := make(map[models.Category]struct{})
	var uptime float64
	for i := range sites {
		if sites[i].IsDeployed() {
			summary.DeployedCount++
		}
		categories[sites[i].Category] = struct{}{}
		uptime += sites[i].Stats.Uptime
	}
	summary.DistinctCategories = len(categories)
	summary.AverageUptime = math.Round(uptime/float64(len(sites))*10) / 10
	return summary, nil
}

// Total returns the number of cycles recorded. A missing or unreadable
// counter reads as zero.
func (s *SiteStore) Total(ctx context.Context) (int, error) {
	return s.total(ctx)
}

// LastRun returns the time of the last recorded cycle. ok is false if no
// cycle has been recorded.
func (s *SiteStore) LastRun(ctx context.Context) (t time.Time, ok bool, err error) {
	raw, ok, err := s.kv.Get(ctx, KeyLastRun)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	t, err = time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		slog.Warn("unreadable lastRun value", "value", raw, "error", err)
		return time.Time{}, false, nil
	}
	return t, true, nil
}

func (s *SiteStore) all(ctx context.Context) ([]models.Site, error) {
	var sites []models.Site
	if _, err := getJSON(ctx, s.kv, KeySites, &sites); err != nil {
		return nil, fmt.Errorf("load sites: %w", err)
	}
	return sites, nil
}

func (s *SiteStore) total(ctx context.Context) (int, error) {
	raw, ok, err := s.kv.Get(ctx, KeyTotalSites)
	if err != nil {
		return 0, fmt.Errorf("load total: %w", err)
	}
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		slog.Warn("unreadable totalSites value, treating as zero", "value", raw)
		return 0, nil
	}
	return n, nil
}

func (s *SiteStore) save(ctx context.Context, sites []models.Site) error {
	list, err := encodeJSON(KeySites, sites)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, KeySites, list); err != nil {
		return fmt.Errorf("save sites: %w", err)
	}
	return nil
}

func indexOf(sites []models.Site, id string) int {
	for i := range sites {
		if sites[i].ID == id {
			return i
		}
	}
	return -1
}
