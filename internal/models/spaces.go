// Spacesd - Tecnico Campus Spaces Directory Mirror
// Copyright 2026 Tecnico Spaces contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tecnicospaces/spacesd

// Package models defines the canonical domain types shared across spacesd:
// normalized space records, the snapshot structure held by the cache, and
// schedule events.
package models

// SpaceType classifies a space in the campus hierarchy.
type SpaceType string

// Space types as reported by the upstream directory.
const (
	TypeCampus          SpaceType = "CAMPUS"
	TypeBuilding        SpaceType = "BUILDING"
	TypeFloor           SpaceType = "FLOOR"
	TypeRoom            SpaceType = "ROOM"
	TypeRoomSubdivision SpaceType = "ROOM_SUBDIVISION"
)

// ExpectedTypes lists the buckets every snapshot must contain, even when
// empty. Upstream may introduce additional types; those get extra buckets.
var ExpectedTypes = []SpaceType{
	TypeCampus,
	TypeBuilding,
	TypeFloor,
	TypeRoom,
	TypeRoomSubdivision,
}

// IsRoom reports whether the type is room-like (ROOM or ROOM_SUBDIVISION).
// Only room-like spaces carry the alwaysOpen flag.
func (t SpaceType) IsRoom() bool {
	return t == TypeRoom || t == TypeRoomSubdivision
}

// Location is the structured location derived from a space's free-text
// description. It is nil on records whose description did not match the
// expected trailing-parenthetical shape.
type Location struct {
	// Floor lists floor components farthest-to-nearest, joined with ", ".
	// May be empty for spaces located directly at building level.
	Floor    string `json:"floor"`
	Building string `json:"building"`
	Campus   string `json:"campus"`
}

// NormalizedSpace is the enriched record served from the snapshot.
type NormalizedSpace struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Type     SpaceType `json:"type"`
	Location *Location `json:"location"`

	// AlwaysOpen is set only for ROOM and ROOM_SUBDIVISION spaces.
	AlwaysOpen *bool `json:"alwaysOpen,omitempty"`

	// Map is a maps URL attached from the manual id->URL table, if any.
	Map string `json:"map,omitempty"`
}

// Snapshot maps a space type to the normalized spaces of that type, in
// upstream listing order. A snapshot is immutable once installed into the
// cache; rebuilds produce a fresh one and swap it in wholesale.
type Snapshot map[SpaceType][]NormalizedSpace

// NewSnapshot returns a snapshot with all expected buckets present as empty
// slices, so consumers never need to nil-check bucket names.
func NewSnapshot() Snapshot {
	s := make(Snapshot, len(ExpectedTypes))
	for _, t := range ExpectedTypes {
		s[t] = []NormalizedSpace{}
	}
	return s
}

// Add appends a space to the bucket matching its type, creating the bucket
// lazily for types outside the expected set.
func (s Snapshot) Add(space NormalizedSpace) {
	s[space.Type] = append(s[space.Type], space)
}

// Len returns the total number of spaces across all buckets.
func (s Snapshot) Len() int {
	n := 0
	for _, bucket := range s {
		n += len(bucket)
	}
	return n
}
