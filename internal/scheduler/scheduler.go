// Spacesd - Tecnico Campus Spaces Directory Mirror
// Copyright 2026 Tecnico Spaces contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tecnicospaces/spacesd

// Package scheduler triggers periodic snapshot rebuilds from a cron
// expression.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tecnicospaces/spacesd/internal/directory"
	"github.com/tecnicospaces/spacesd/internal/logging"
)

// rebuildTimeout bounds a single scheduled rebuild. A rebuild walking the
// full space tree takes minutes, not hours.
const rebuildTimeout = 30 * time.Minute

// Scheduler runs snapshot rebuilds on a cron schedule.
type Scheduler struct {
	service  *directory.Service
	schedule string

	mu      sync.Mutex
	cron    *cron.Cron
	started bool
}

// New creates a Scheduler that rebuilds on the given standard 5-field cron
// expression.
func New(service *directory.Service, schedule string) *Scheduler {
	return &Scheduler{
		service:  service,
		schedule: schedule,
	}
}

// Start begins the cron loop. Safe to call once; a second call is an error.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return errors.New("scheduler already started")
	}

	c := cron.New()
	if _, err := c.AddFunc(s.schedule, s.runRebuild); err != nil {
		return fmt.Errorf("invalid rebuild schedule %q: %w", s.schedule, err)
	}

	c.Start()
	s.cron = c
	s.started = true

	logging.Info().Str("schedule", s.schedule).Msg("Rebuild scheduler started")
	return nil
}

// Stop halts the cron loop and waits for a running rebuild to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.started = false
	logging.Info().Msg("Rebuild scheduler stopped")
}

// runRebuild is the cron entry point. Overlapping triggers are rejected by
// the rebuild service and only logged here.
func (s *Scheduler) runRebuild() {
	ctx, cancel := context.WithTimeout(context.Background(), rebuildTimeout)
	defer cancel()

	logging.Info().Msg("Scheduled rebuild triggered")

	err := s.service.RebuildNow(ctx)
	switch {
	case errors.Is(err, directory.ErrRebuildInProgress):
		logging.Warn().Msg("Scheduled rebuild skipped, previous rebuild still running")
	case err != nil:
		logging.Error().Err(err).Msg("Scheduled rebuild failed")
	}
}
