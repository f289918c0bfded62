// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package pipeline runs one generation cycle: pick an idea from the enabled
// categories, synthesize its files, deploy them and record the result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"autosite/internal/catalog"
	"autosite/internal/deploy"
	"autosite/internal/engine"
	"autosite/internal/ideasource"
	"autosite/internal/models"
)

// Every error returned by Run matches exactly one of these.
var (
	ErrNoCategoriesEnabled = errors.New("no categories enabled")
	ErrGeneration          = errors.New("generation failed")
	ErrPersistence         = errors.New("persistence failed")
)

// Progress messages published while a cycle runs.
const (
	TaskIdea      = "Generating website idea..."
	TaskSynthesis = "Creating HTML structure..."
	TaskDeploy    = "Deploying to GitHub Pages..."
	TaskRecord    = "Updating dashboard..."
)

// Rand is the source of randomness for idea selection.
type Rand interface {
	IntN(n int) int
}

type defaultRand struct{}

func (defaultRand) IntN(n int) int { return rand.IntN(n) }

// SettingsSource supplies the settings read at the start of every cycle.
type SettingsSource interface {
	Load(ctx context.Context) (models.Settings, error)
}

// Registry persists completed cycles.
type Registry interface {
	Append(ctx context.Context, site *models.Site) error
}

// Archiver keeps an off-site copy of a deployed bundle.
type Archiver interface {
	Save(ctx context.Context, site *models.Site, artifacts engine.Artifacts) (string, error)
}

// ActivityLogger records user-facing activity entries.
type ActivityLogger interface {
	Log(ctx context.Context, level models.LogLevel, message, details string)
}

// Options configures a Pipeline. Settings, Registry, Engine and Deployer
// are required; the rest are optional.
type Options struct {
	Settings SettingsSource
	Registry Registry
	Engine   *engine.Engine
	Deployer deploy.Deployer

	// Source, when set, is consulted after an idea is selected.
	Source ideasource.Source
	// Archive, when set, receives a backup of each deployed bundle if the
	// backupCode setting is on.
	Archive  Archiver
	Activity ActivityLogger

	Rand  Rand
	Clock clockwork.Clock
}

// Pipeline executes generation cycles. It holds no per-cycle state and is
// safe for concurrent use, though the scheduler never runs two at once.
type Pipeline struct {
	settings SettingsSource
	registry Registry
	engine   *engine.Engine
	deployer deploy.Deployer
	source   ideasource.Source
	archive  Archiver
	activity ActivityLogger
	rand     Rand
	clock    clockwork.Clock
}

// New creates a Pipeline from opts.
func New(opts Options) *Pipeline {
	p := &Pipeline{
		settings: opts.Settings,
		registry: opts.Registry,
		engine:   opts.Engine,
		deployer: opts.Deployer,
		source:   opts.Source,
		archive:  opts.Archive,
		activity: opts.Activity,
		rand:     opts.Rand,
		clock:    opts.Clock,
	}
	if p.rand == nil {
		p.rand = defaultRand{}
	}
	if p.clock == nil {
		p.clock = clockwork.NewRealClock()
	}
	return p
}

// Result describes a successful cycle.
type Result struct {
	Site *models.Site
	// Idea is the text returned by the idea source, if one is configured.
	Idea string
	// ArchiveURL is the backed-up index.html, if the bundle was archived.
	ArchiveURL string
}

// Run executes one cycle. progress, if non-nil, is called as each step
// starts. Exactly one record is appended on success and none on failure.
func (p *Pipeline) Run(ctx context.Context, progress func(task string)) (*Result, error) {
	report := func(task string) {
		if progress != nil {
			progress(task)
		}
	}

	settings, err := p.settings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load settings: %w", ErrPersistence, err)
	}

	report(TaskIdea)
	idea, err := p.pickIdea(settings)
	if err != nil {
		return nil, err
	}
	slog.Info("idea selected", "name", idea.Name, "category", idea.Category)

	res := &Result{}
	var remote engine.Artifacts
	if p.source != nil {
		fetched, err := p.source.Fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
		}
		res.Idea = fetched.Idea
		remote = engine.ArtifactsFromFiles(fetched.Files)
	}

	report(TaskSynthesis)
	artifacts, err := p.engine.Synthesize(idea)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	if remote.Complete() {
		artifacts = remote
	}

	report(TaskDeploy)
	url, err := p.deployer.Deploy(ctx, artifacts)
	if err != nil {
		return nil, fmt.Errorf("%w: deploy: %w", ErrGeneration, err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("%w: site id: %w", ErrGeneration, err)
	}
	site := &models.Site{
		ID:           id.String(),
		Name:         idea.Name,
		Description:  idea.Description,
		Category:     idea.Category,
		URL:          url,
		CreatedAt:    p.clock.Now().UTC(),
		Status:       models.SiteStatusDeployed,
		Technologies: append([]string(nil), models.Technologies...),
		Stats:        models.SiteStats{Visits: 0, Uptime: models.DefaultUptime},
	}

	report(TaskRecord)
	if err := p.registry.Append(ctx, site); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	res.Site = site

	if p.archive != nil && settings.Automation.BackupCode {
		res.ArchiveURL = p.backup(ctx, site, artifacts)
	}
	return res, nil
}

// pickIdea selects a category uniformly among the enabled ones, then an idea
// uniformly within it.
func (p *Pipeline) pickIdea(settings models.Settings) (models.IdeaDescriptor, error) {
	enabled := settings.EnabledCategories()
	if len(enabled) == 0 {
		return models.IdeaDescriptor{}, ErrNoCategoriesEnabled
	}
	category := enabled[p.rand.IntN(len(enabled))]

	ideas := catalog.Lookup(category)
	if len(ideas) == 0 {
		return models.IdeaDescriptor{}, fmt.Errorf("%w: no ideas for category %q", ErrGeneration, category)
	}
	return ideas[p.rand.IntN(len(ideas))], nil
}

// backup archives the bundle. Failures never fail the cycle.
func (p *Pipeline) backup(ctx context.Context, site *models.Site, artifacts engine.Artifacts) string {
	url, err := p.archive.Save(ctx, site, artifacts)
	if err != nil {
		slog.Warn("site backup failed", "id", site.ID, "error", err)
		if p.activity != nil {
			p.activity.Log(ctx, models.LogWarning, "Code backup failed", fmt.Sprintf("%s: %v", site.Name, err))
		}
		return ""
	}
	return url
}
