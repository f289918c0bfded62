// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package deploy publishes synthesized artifacts. Publication is simulated:
// it takes a fixed latency and yields a github.io URL. Archive optionally
// keeps a copy of each bundle in object storage.
package deploy

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"autosite/internal/engine"
)

// DefaultLatency is how long a simulated deployment takes.
const DefaultLatency = 2 * time.Second

// Deployer publishes one set of artifacts and returns the public URL.
type Deployer interface {
	Deploy(ctx context.Context, artifacts engine.Artifacts) (string, error)
}

// Simulated waits Latency on Clock and then reports success.
type Simulated struct {
	Latency time.Duration
	Clock   clockwork.Clock
}

// NewSimulated returns a Simulated deployer on the real clock.
func NewSimulated(latency time.Duration) *Simulated {
	return &Simulated{Latency: latency, Clock: clockwork.NewRealClock()}
}

// Deploy implements Deployer. It only fails if ctx ends first.
func (s *Simulated) Deploy(ctx context.Context, _ engine.Artifacts) (string, error) {
	clock := s.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	if s.Latency > 0 {
		timer := clock.NewTimer(s.Latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("deploy: %w", ctx.Err())
		case <-timer.Chan():
		}
	}
	return SiteURL(clock.Now()), nil
}

// SiteURL is the address a site deployed at t is published under.
func SiteURL(t time.Time) string {
	return fmt.Sprintf("https://ai-gen-%d.github.io", t.UnixMilli())
}
