// Spacesd - Tecnico Campus Spaces Directory Mirror
// Copyright 2026 Tecnico Spaces contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tecnicospaces/spacesd

// Package directory implements the normalization pipeline that turns raw
// Fenix space payloads into the typed snapshot served by the API: location
// parsing, enrichment from the static tables, per-space fetching, snapshot
// building, and the in-memory cache the snapshot is swapped into.
package directory

import (
	"regexp"
	"strings"

	"github.com/tecnicospaces/spacesd/internal/models"
)

// trailingParen matches a parenthesized group at the very end of a space
// description, e.g. "QA02.4 (-2, Torre Sul, Alameda)".
var trailingParen = regexp.MustCompile(`\(([^)]+)\)$`)

// ParseLocation extracts structured location data from a space description.
// The trailing parenthetical lists floor segment(s), building, and campus,
// in that order. Returns nil when the description carries no parseable
// location.
func ParseLocation(description string) *models.Location {
	match := trailingParen.FindStringSubmatch(description)
	if match == nil {
		return nil
	}

	parts := strings.Split(match[1], ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	// At least floor, building, campus.
	if len(parts) < 3 {
		return nil
	}

	campus := parts[len(parts)-1]
	building := parts[len(parts)-2]
	floorParts := parts[:len(parts)-2]

	// Floor segments arrive outermost-first ("1, 0") and are served
	// innermost-first ("0, 1").
	reversed := make([]string, 0, len(floorParts))
	for i := len(floorParts) - 1; i >= 0; i-- {
		reversed = append(reversed, floorParts[i])
	}

	return &models.Location{
		Floor:    strings.Join(reversed, ", "),
		Building: building,
		Campus:   campus,
	}
}
