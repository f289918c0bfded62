// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultDeploymentTime is the daily run time used when none is configured
// or the stored value cannot be parsed.
const DefaultDeploymentTime = "03:00"

// ErrInvalidDeploymentTime is returned when deploymentTime is not "HH:MM".
var ErrInvalidDeploymentTime = errors.New("deployment time must be HH:MM (24h)")

// Settings is the runtime configuration document stored under the
// systemSettings key. It is edited from the admin API and re-read by the
// scheduler and pipeline at every decision.
type Settings struct {
	GithubUsername string             `json:"githubUsername"`
	DeploymentTime string             `json:"deploymentTime"`
	Categories     map[Category]bool  `json:"categories"`
	Automation     AutomationSettings `json:"automation"`
	Advanced       AdvancedSettings   `json:"advanced"`
}

// AutomationSettings controls the unattended daily run.
type AutomationSettings struct {
	Enabled          bool `json:"enabled"`
	TestBeforeDeploy bool `json:"testBeforeDeploy"`
	BackupCode       bool `json:"backupCode"`
	NotifyOnComplete bool `json:"notifyOnComplete"`
}

// AdvancedSettings are quality toggles carried with the settings document.
type AdvancedSettings struct {
	CodeOptimization   bool `json:"codeOptimization"`
	SEOOptimization    bool `json:"seoOptimization"`
	AccessibilityCheck bool `json:"accessibilityCheck"`
	PerformanceAudit   bool `json:"performanceAudit"`
}

// DefaultSettings returns the settings used before anything is saved.
func DefaultSettings() Settings {
	cats := make(map[Category]bool, len(AllCategories))
	for _, c := range AllCategories {
		cats[c] = true
	}
	return Settings{
		GithubUsername: "ai-website-generator",
		DeploymentTime: DefaultDeploymentTime,
		Categories:     cats,
		Automation: AutomationSettings{
			Enabled:          true,
			TestBeforeDeploy: true,
			BackupCode:       true,
		},
		Advanced: AdvancedSettings{
			CodeOptimization:   true,
			SEOOptimization:    true,
			AccessibilityCheck: true,
			PerformanceAudit:   true,
		},
	}
}

// EnabledCategories returns the known categories switched on, in
// AllCategories order so that random selection is reproducible.
func (s Settings) EnabledCategories() []Category {
	var out []Category
	for _, c := range AllCategories {
		if s.Categories[c] {
			out = append(out, c)
		}
	}
	return out
}

// TimeOfDay parses DeploymentTime into hour and minute.
func (s Settings) TimeOfDay() (hour, minute int, err error) {
	return ParseTimeOfDay(s.DeploymentTime)
}

// Validate checks the fields the scheduler depends on.
func (s Settings) Validate() error {
	if _, _, err := s.TimeOfDay(); err != nil {
		return err
	}
	for c := range s.Categories {
		if !c.Valid() {
			return fmt.Errorf("unknown category %q", c)
		}
	}
	return nil
}

// ParseTimeOfDay parses a 24h "HH:MM" string.
func ParseTimeOfDay(v string) (hour, minute int, err error) {
	h, m, ok := strings.Cut(strings.TrimSpace(v), ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidDeploymentTime, v)
	}
	hour, err = strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidDeploymentTime, v)
	}
	minute, err = strconv.Atoi(m)
	if err != nil || len(m) != 2 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidDeploymentTime, v)
	}
	return hour, minute, nil
}
