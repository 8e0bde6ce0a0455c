// Spacesd - Tecnico Campus Spaces Directory Mirror
// Copyright 2026 Tecnico Spaces contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tecnicospaces/spacesd

package directory

import (
	"context"
	"fmt"

	"github.com/tecnicospaces/spacesd/internal/fenix"
	"github.com/tecnicospaces/spacesd/internal/models"
)

// Fetcher retrieves one space from the upstream and normalizes it: detail
// fetch, location parsing, then enrichment.
type Fetcher struct {
	client   fenix.ClientInterface
	enricher *Enricher
}

// NewFetcher creates a Fetcher over the given upstream client and enricher.
func NewFetcher(client fenix.ClientInterface, enricher *Enricher) *Fetcher {
	return &Fetcher{client: client, enricher: enricher}
}

// FetchSpace fetches and normalizes a single space.
func (f *Fetcher) FetchSpace(ctx context.Context, spaceID string) (*models.NormalizedSpace, error) {
	detail, err := f.client.GetSpace(ctx, spaceID)
	if err != nil {
		return nil, fmt.Errorf("fetch space %s: %w", spaceID, err)
	}

	space := &models.NormalizedSpace{
		ID:       detail.ID,
		Name:     detail.Name,
		Type:     models.SpaceType(detail.Type),
		Location: ParseLocation(detail.Description),
	}

	f.enricher.Enrich(space)
	return space, nil
}
