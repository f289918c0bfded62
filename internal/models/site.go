// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// SiteStatus represents the deployment state of a generated site.
type SiteStatus string

const (
	SiteStatusDeployed  SiteStatus = "deployed"
	SiteStatusDeploying SiteStatus = "deploying"
	SiteStatusFailed    SiteStatus = "failed"
)

// DefaultUptime is the uptime percentage recorded for a freshly deployed site.
const DefaultUptime = 99.9

// Technologies is the toolchain every generated site is built with.
var Technologies = []string{"HTML5", "CSS3", "JavaScript", "GitHub Pages"}

// SiteStats holds the counters shown next to a generated site.
type SiteStats struct {
	Visits int     `json:"visits"`
	Uptime float64 `json:"uptime"`
}

// Site is the record of one successful generation cycle. Only Stats.Visits
// changes after creation.
type Site struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Category     Category   `json:"category"`
	URL          string     `json:"url"`
	CreatedAt    time.Time  `json:"createdAt"`
	Status       SiteStatus `json:"status"`
	Technologies []string   `json:"technologies"`
	Stats        SiteStats  `json:"stats"`
}

// IsDeployed returns true if the site finished deploying.
func (s *Site) IsDeployed() bool {
	return s.Status == SiteStatusDeployed
}

// SiteStatsSummary aggregates the registry for the dashboard.
type SiteStatsSummary struct {
	TotalSites         int     `json:"totalSites"`
	DeployedCount      int     `json:"deployed"`
	DistinctCategories int     `json:"categories"`
	AverageUptime      float64 `json:"avgUptime"`
}
