// Spacesd - Tecnico Campus Spaces Directory Mirror
// Copyright 2026 Tecnico Spaces contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tecnicospaces/spacesd

package directory

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/tecnicospaces/spacesd/internal/logging"
	"github.com/tecnicospaces/spacesd/internal/metrics"
	"github.com/tecnicospaces/spacesd/internal/models"
)

// ErrRebuildInProgress is returned when a rebuild is requested while
// another one is still running.
var ErrRebuildInProgress = errors.New("rebuild already in progress")

// Service coordinates snapshot rebuilds over the cache. At most one rebuild
// runs at a time; concurrent triggers are rejected rather than queued.
type Service struct {
	builder    *Builder
	cache      *SnapshotCache
	inProgress atomic.Bool
}

// NewService creates a rebuild service over the given builder and cache.
func NewService(builder *Builder, cache *SnapshotCache) *Service {
	return &Service{builder: builder, cache: cache}
}

// Cache exposes the snapshot cache for read paths.
func (s *Service) Cache() *SnapshotCache {
	return s.cache
}

// RebuildNow builds a fresh snapshot and installs it. On build failure the
// previous snapshot stays installed. Returns ErrRebuildInProgress when a
// rebuild is already running.
func (s *Service) RebuildNow(ctx context.Context) error {
	if !s.inProgress.CompareAndSwap(false, true) {
		metrics.RebuildsTotal.WithLabelValues("skipped").Inc()
		return ErrRebuildInProgress
	}
	defer s.inProgress.Store(false)

	logging.Info().Msg("Starting snapshot rebuild")
	start := time.Now()

	snapshot, err := s.builder.Build(ctx)
	if err != nil {
		metrics.RebuildsTotal.WithLabelValues("failure").Inc()
		logging.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("Snapshot rebuild failed, keeping previous snapshot")
		return err
	}

	s.cache.Install(snapshot)

	elapsed := time.Since(start)
	metrics.RebuildsTotal.WithLabelValues("success").Inc()
	metrics.RebuildDuration.Observe(elapsed.Seconds())
	metrics.SnapshotBuiltTimestamp.Set(float64(time.Now().Unix()))
	for _, spaceType := range models.ExpectedTypes {
		metrics.SnapshotSpaces.WithLabelValues(string(spaceType)).Set(float64(len(snapshot[spaceType])))
	}

	logging.Info().Int("spaces", snapshot.Len()).Dur("elapsed", elapsed).Msg("Snapshot rebuild complete")
	return nil
}

// RebuildInProgress reports whether a rebuild is currently running.
func (s *Service) RebuildInProgress() bool {
	return s.inProgress.Load()
}
