// Spacesd - Tecnico Campus Spaces Directory Mirror
// Copyright 2026 Tecnico Spaces contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tecnicospaces/spacesd

package directory

import (
	"context"
	"fmt"

	"github.com/tecnicospaces/spacesd/internal/fenix"
	"github.com/tecnicospaces/spacesd/internal/logging"
	"github.com/tecnicospaces/spacesd/internal/metrics"
	"github.com/tecnicospaces/spacesd/internal/models"
)

// Builder assembles a full snapshot from the upstream: one listing fetch,
// then one detail fetch per listed space.
//
// Failure handling is asymmetric. A failed listing aborts the build so the
// caller keeps serving the previous snapshot. A failed per-space fetch only
// drops that space from the new snapshot.
type Builder struct {
	client  fenix.ClientInterface
	fetcher *Fetcher
}

// NewBuilder creates a Builder over the given upstream client and fetcher.
func NewBuilder(client fenix.ClientInterface, fetcher *Fetcher) *Builder {
	return &Builder{client: client, fetcher: fetcher}
}

// Build fetches everything and returns a fresh snapshot. The returned
// snapshot always carries all five expected type buckets, even when empty.
func (b *Builder) Build(ctx context.Context) (models.Snapshot, error) {
	listing, err := b.client.ListSpaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list spaces: %w", err)
	}
	if listing == nil {
		return nil, fmt.Errorf("list spaces: %w: nil listing", fenix.ErrUpstreamUnavailable)
	}

	snapshot := models.NewSnapshot()
	failed := 0

	for _, entry := range listing {
		// Unnamed listing entries are placeholder records upstream.
		if entry.Name == "" {
			continue
		}

		space, err := b.fetcher.FetchSpace(ctx, entry.ID)
		if err != nil {
			failed++
			metrics.SpaceFetchFailures.Inc()
			logging.Error().Err(err).Str("space_id", entry.ID).Msg("Dropping space from snapshot")
			continue
		}

		snapshot.Add(*space)
	}

	logging.Info().
		Int("total", snapshot.Len()).
		Int("failed", failed).
		Int("campus", len(snapshot[models.TypeCampus])).
		Int("building", len(snapshot[models.TypeBuilding])).
		Int("floor", len(snapshot[models.TypeFloor])).
		Int("room", len(snapshot[models.TypeRoom])).
		Int("room_subdivision", len(snapshot[models.TypeRoomSubdivision])).
		Msg("Snapshot built")

	return snapshot, nil
}
