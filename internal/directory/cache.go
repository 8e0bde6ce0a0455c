// Spacesd - Tecnico Campus Spaces Directory Mirror
// Copyright 2026 Tecnico Spaces contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tecnicospaces/spacesd

package directory

import (
	"errors"
	"sync"
	"time"

	"github.com/tecnicospaces/spacesd/internal/models"
)

// ErrCacheUnavailable is returned when no snapshot has ever been installed.
var ErrCacheUnavailable = errors.New("space cache not built yet")

// SnapshotCache holds the current snapshot behind a read-write mutex.
// Installs swap the whole snapshot atomically; readers never see a
// half-built one.
type SnapshotCache struct {
	mu       sync.RWMutex
	snapshot models.Snapshot
	builtAt  time.Time
}

// NewSnapshotCache returns an empty cache with no snapshot installed.
func NewSnapshotCache() *SnapshotCache {
	return &SnapshotCache{}
}

// Get returns the current snapshot, or ErrCacheUnavailable if no rebuild
// has ever succeeded.
func (c *SnapshotCache) Get() (models.Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snapshot == nil {
		return nil, ErrCacheUnavailable
	}
	return c.snapshot, nil
}

// Install replaces the current snapshot. The caller must not mutate the
// snapshot after installing it.
func (c *SnapshotCache) Install(snapshot models.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot = snapshot
	c.builtAt = time.Now()
}

// Ready reports whether a snapshot has been installed.
func (c *SnapshotCache) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot != nil
}

// LastBuilt returns when the current snapshot was installed. The zero time
// means no snapshot has been installed.
func (c *SnapshotCache) LastBuilt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.builtAt
}
