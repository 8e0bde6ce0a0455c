// Spacesd - Tecnico Campus Spaces Directory Mirror
// Copyright 2026 Tecnico Spaces contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tecnicospaces/spacesd

package models

// EventTime holds the canonical "YYYY-MM-DD HH:MM" start and end of an event.
type EventTime struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ScheduleEvent is one normalized calendar entry for a space on a given day.
//
// ID is content-derived: the space ID concatenated with the canonical start
// time stripped of space, colon and hyphen characters. It is stable across
// repeated fetches of the same event but only unique within one space's
// schedule.
type ScheduleEvent struct {
	Title      string    `json:"title"`
	Time       EventTime `json:"time"`
	IsEditable bool      `json:"isEditable"`
	ID         string    `json:"id"`
}
