// Spacesd - Tecnico Campus Spaces Directory Mirror
// Copyright 2026 Tecnico Spaces contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tecnicospaces/spacesd

package directory

import (
	"github.com/tecnicospaces/spacesd/internal/config"
	"github.com/tecnicospaces/spacesd/internal/logging"
	"github.com/tecnicospaces/spacesd/internal/models"
)

// Enricher applies the static directory tables to a normalized space:
// field corrections for spaces the upstream gets wrong, the always-open
// flag for rooms, and external map links.
type Enricher struct {
	alwaysOpen  map[string]struct{}
	mistakes    map[string]string
	corrections map[string]string
	maps        map[string]string
}

// NewEnricher builds an Enricher from the directory configuration. The
// tables are copied so later config mutation cannot affect a running
// rebuild.
func NewEnricher(cfg *config.DirectoryConfig) *Enricher {
	alwaysOpen := make(map[string]struct{}, len(cfg.AlwaysOpen))
	for _, name := range cfg.AlwaysOpen {
		alwaysOpen[name] = struct{}{}
	}

	return &Enricher{
		alwaysOpen:  alwaysOpen,
		mistakes:    copyTable(cfg.Mistakes),
		corrections: copyTable(cfg.Corrections),
		maps:        copyTable(cfg.Maps),
	}
}

func copyTable(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// Enrich mutates the space in place. Order matters: corrections run first
// so the always-open check sees the corrected name, and the maps table
// runs last.
func (e *Enricher) Enrich(space *models.NormalizedSpace) {
	e.applyCorrection(space)

	// The always-open flag only exists on room types. Other types keep a
	// nil pointer so the field is omitted from responses entirely.
	if space.Type.IsRoom() {
		_, open := e.alwaysOpen[space.Name]
		space.AlwaysOpen = &open
	}

	if mapURL, ok := e.maps[space.ID]; ok {
		space.Map = mapURL
	}
}

// applyCorrection overwrites a single field of the space when the mistakes
// table names one. The replacement value lives in the corrections table
// under the space ID suffixed with "c".
func (e *Enricher) applyCorrection(space *models.NormalizedSpace) {
	field, ok := e.mistakes[space.ID]
	if !ok {
		return
	}

	value, ok := e.corrections[space.ID+"c"]
	if !ok {
		logging.Warn().Str("space_id", space.ID).Str("field", field).Msg("Mistake entry has no matching correction")
		return
	}

	switch field {
	case "name":
		space.Name = value
	case "type":
		space.Type = models.SpaceType(value)
	case "map":
		space.Map = value
	case "floor":
		e.ensureLocation(space).Floor = value
	case "building":
		e.ensureLocation(space).Building = value
	case "campus":
		e.ensureLocation(space).Campus = value
	default:
		logging.Warn().Str("space_id", space.ID).Str("field", field).Msg("Correction names an unknown field, skipping")
	}
}

func (e *Enricher) ensureLocation(space *models.NormalizedSpace) *models.Location {
	if space.Location == nil {
		space.Location = &models.Location{}
	}
	return space.Location
}
