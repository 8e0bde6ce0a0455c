// Spacesd - Tecnico Campus Spaces Directory Mirror
// Copyright 2026 Tecnico Spaces contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tecnicospaces/spacesd

package api

import (
	"time"

	"github.com/tecnicospaces/spacesd/internal/directory"
)

// Version is the reported service version.
const Version = "1.0.0"

// Handler carries the dependencies of all HTTP handlers.
type Handler struct {
	service   *directory.Service
	schedules *directory.ScheduleFetcher
	startTime time.Time
}

// NewHandler creates a Handler over the rebuild service and schedule
// fetcher.
func NewHandler(service *directory.Service, schedules *directory.ScheduleFetcher) *Handler {
	return &Handler{
		service:   service,
		schedules: schedules,
		startTime: time.Now(),
	}
}
