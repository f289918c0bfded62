// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package scheduler runs the generation pipeline once a day at the
// configured time of day. It arms at most one timer, never lets two runs
// overlap and re-arms after every run, successful or not.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"autosite/internal/models"
	"autosite/internal/pipeline"
)

// State is the lifecycle state reported by Status.
type State string

const (
	StateStopped   State = "stopped"
	StateScheduled State = "scheduled"
	StateRunning   State = "running"
)

// Activity messages written to the user-facing log.
const (
	msgRunStarted  = "Starting website generation process"
	msgRunSuccess  = "Website generation completed successfully"
	msgRunFailed   = "Website generation failed"
	msgFireSkipped = "Scheduled run skipped"
)

// Runner executes one generation cycle.
type Runner interface {
	Run(ctx context.Context, progress func(task string)) (*pipeline.Result, error)
}

// SettingsSource supplies the settings read at every scheduling decision.
type SettingsSource interface {
	Load(ctx context.Context) (models.Settings, error)
}

// ActivityLogger records user-facing activity entries.
type ActivityLogger interface {
	Log(ctx context.Context, level models.LogLevel, message, details string)
}

// Options configures a Scheduler. Clock defaults to the real clock.
type Options struct {
	Settings SettingsSource
	Runner   Runner
	Activity ActivityLogger
	Clock    clockwork.Clock
}

// Status is a snapshot of the scheduler.
type Status struct {
	State       State      `json:"state"`
	Running     bool       `json:"running"`
	NextRunAt   *time.Time `json:"nextRun"`
	CurrentTask string     `json:"currentTask,omitempty"`
}

// Scheduler owns the daily trigger. Create one per process with New.
type Scheduler struct {
	settings SettingsSource
	runner   Runner
	activity ActivityLogger
	clock    clockwork.Clock

	mu      sync.Mutex
	ctx     context.Context
	started bool
	timer   clockwork.Timer
	// epoch identifies the armed timer. A callback whose epoch no longer
	// matches was superseded and does nothing.
	epoch       uint64
	nextRun     time.Time
	running     bool
	idle        chan struct{} // closed when the in-flight run finishes
	currentTask string
}

// New creates a stopped Scheduler.
func New(opts Options) *Scheduler {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{
		settings: opts.Settings,
		runner:   opts.Runner,
		activity: opts.Activity,
		clock:    clock,
		ctx:      context.Background(),
	}
}

// NextRun returns the first hour:minute strictly after now, in now's
// location: today if that time is still ahead, otherwise tomorrow.
func NextRun(now time.Time, hour, minute int) time.Time {
	y, m, d := now.Date()
	next := time.Date(y, m, d, hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(y, m, d+1, hour, minute, 0, 0, now.Location())
	}
	return next
}

// Start arms the timer for the next run if automation is enabled. Runs
// started by the scheduler use a context that keeps ctx's values but is
// never cancelled, so shutdown does not abort a cycle halfway.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.started = true
	s.ctx = context.WithoutCancel(ctx)
	s.mu.Unlock()

	s.rearm(ctx)
}

// Stop disarms the timer. A run already in flight is left to finish, and
// the scheduler will not re-arm afterwards.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
	s.disarmLocked()
	slog.Info("scheduler stopped")
}

// Reload re-reads settings and re-arms the timer. Call it after settings
// change. It does nothing while the scheduler is stopped.
func (s *Scheduler) Reload(ctx context.Context) {
	s.rearm(ctx)
}

// ForceRun starts a run immediately, leaving the armed timer alone. It
// returns false, and does nothing, if a run is already in flight.
func (s *Scheduler) ForceRun() bool {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		slog.Info("force run ignored, generation already in progress")
		return false
	}
	s.beginRunLocked()
	ctx := s.ctx
	s.mu.Unlock()

	go s.execute(ctx, "manual")
	return true
}

// Status returns a snapshot of the scheduler state.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		Running:     s.running,
		CurrentTask: s.currentTask,
	}
	switch {
	case s.running:
		st.State = StateRunning
	case s.timer != nil:
		st.State = StateScheduled
	default:
		st.State = StateStopped
	}
	if s.timer != nil {
		next := s.nextRun
		st.NextRunAt = &next
	}
	return st
}

// Wait blocks until no run is in flight or ctx is done.
func (s *Scheduler) Wait(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	idle := s.idle
	s.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// fire is the timer callback.
func (s *Scheduler) fire(epoch uint64) {
	s.mu.Lock()
	if epoch != s.epoch || !s.started {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.nextRun = time.Time{}
	ctx := s.ctx

	if s.running {
		// The in-flight run re-arms when it completes.
		s.mu.Unlock()
		slog.Warn("scheduled run skipped, generation already in progress")
		s.log(ctx, models.LogWarning, msgFireSkipped, "A generation was already in progress")
		return
	}
	s.beginRunLocked()
	s.mu.Unlock()

	s.execute(ctx, "scheduled")
}

// execute runs one cycle. The caller must have called beginRunLocked.
func (s *Scheduler) execute(ctx context.Context, trigger string) {
	slog.Info("generation started", "trigger", trigger)
	s.log(ctx, models.LogInfo, msgRunStarted, "Trigger: "+trigger)

	start := s.clock.Now()
	res, err := s.runSafely(ctx)
	elapsed := s.clock.Since(start)

	if err != nil {
		slog.Error("generation failed", "trigger", trigger, "error", err, "duration", elapsed)
		s.log(ctx, models.LogError, msgRunFailed, err.Error())
	} else {
		slog.Info("generation completed",
			"trigger", trigger,
			"id", res.Site.ID,
			"name", res.Site.Name,
			"category", res.Site.Category,
			"duration", elapsed,
		)
		s.log(ctx, models.LogSuccess, msgRunSuccess, successDetails(res))
	}

	settings := s.loadSettings(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.currentTask = ""
	close(s.idle)
	s.armLocked(settings)
}

// runSafely turns a panic in the runner into an error so the scheduler
// keeps going.
func (s *Scheduler) runSafely(ctx context.Context) (res *pipeline.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generation panicked: %v", r)
		}
	}()
	return s.runner.Run(ctx, s.setTask)
}

func (s *Scheduler) setTask(task string) {
	s.mu.Lock()
	s.currentTask = task
	s.mu.Unlock()
}

// rearm reads settings and arms the timer from them.
func (s *Scheduler) rearm(ctx context.Context) {
	settings := s.loadSettings(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.armLocked(settings)
}

// loadSettings returns the current settings, or the defaults if they
// cannot be read, so one storage hiccup does not stop automation.
func (s *Scheduler) loadSettings(ctx context.Context) models.Settings {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		slog.Error("failed to load settings, using defaults", "error", err)
		return models.DefaultSettings()
	}
	return settings
}

// armLocked replaces any armed timer with one for the next run. s.mu must
// be held.
func (s *Scheduler) armLocked(settings models.Settings) {
	if !s.started {
		return
	}
	s.disarmLocked()

	if !settings.Automation.Enabled {
		slog.Info("automation disabled, no run scheduled")
		return
	}

	hour, minute, err := settings.TimeOfDay()
	if err != nil {
		slog.Warn("invalid deployment time, using default",
			"value", settings.DeploymentTime,
			"default", models.DefaultDeploymentTime,
			"error", err,
		)
		hour, minute, _ = models.ParseTimeOfDay(models.DefaultDeploymentTime)
	}

	now := s.clock.Now()
	next := NextRun(now, hour, minute)
	epoch := s.epoch
	s.timer = s.clock.AfterFunc(next.Sub(now), func() { s.fire(epoch) })
	s.nextRun = next

	slog.Info("next generation scheduled", "at", next, "in", next.Sub(now).Round(time.Second))
}

// disarmLocked stops the armed timer, if any, and invalidates its callback.
// s.mu must be held.
func (s *Scheduler) disarmLocked() {
	s.epoch++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.nextRun = time.Time{}
}

// beginRunLocked marks a run as in flight. s.mu must be held.
func (s *Scheduler) beginRunLocked() {
	s.running = true
	s.idle = make(chan struct{})
}

func (s *Scheduler) log(ctx context.Context, level models.LogLevel, message, details string) {
	if s.activity != nil {
		s.activity.Log(ctx, level, message, details)
	}
}

func successDetails(res *pipeline.Result) string {
	details := "Created: " + res.Site.Name
	if res.Idea != "" {
		details += "\nIdea: " + res.Idea
	}
	if res.ArchiveURL != "" {
		details += "\nBackup: " + res.ArchiveURL
	}
	return details
}
