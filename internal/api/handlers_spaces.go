// Spacesd - Tecnico Campus Spaces Directory Mirror
// Copyright 2026 Tecnico Spaces contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tecnicospaces/spacesd

package api

import (
	"errors"
	"net/http"

	"github.com/tecnicospaces/spacesd/internal/directory"
	"github.com/tecnicospaces/spacesd/internal/logging"
)

// Welcome handles GET / and lists the available endpoints.
func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"name":    "spacesd",
		"version": Version,
		"endpoints": map[string]string{
			"/api/spaces":              "Get all spaces from the cached snapshot",
			"/api/schedule/{space_id}": "Get the schedule for a specific space",
			"/api/rebuild":             "Trigger a snapshot rebuild (POST)",
			"/api/v1/health":           "Service health",
			"/metrics":                 "Prometheus metrics",
		},
	})
}

// GetSpaces handles GET /api/spaces and serves the cached snapshot,
// organized by space type. Returns 503 until the first successful rebuild.
func (h *Handler) GetSpaces(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	snapshot, err := h.service.Cache().Get()
	if err != nil {
		if errors.Is(err, directory.ErrCacheUnavailable) {
			rw.ServiceUnavailable("Space cache not built yet, try again shortly")
			return
		}
		logging.Error().Err(err).Msg("Failed to read snapshot cache")
		rw.InternalError("Failed to read space cache")
		return
	}

	builtAt := h.service.Cache().LastBuilt()
	rw.SuccessWithMeta(snapshot, &APIMeta{SnapshotBuiltAt: &builtAt})
}

// TriggerRebuild handles POST /api/rebuild and runs a synchronous snapshot
// rebuild. Returns 409 when a rebuild is already running and 502 when the
// upstream listing cannot be fetched.
func (h *Handler) TriggerRebuild(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	err := h.service.RebuildNow(r.Context())
	switch {
	case errors.Is(err, directory.ErrRebuildInProgress):
		rw.Conflict("A rebuild is already in progress")
		return
	case err != nil:
		rw.ExternalServiceError("fenix", err)
		return
	}

	snapshot, err := h.service.Cache().Get()
	if err != nil {
		rw.InternalError("Rebuild finished but snapshot is missing")
		return
	}

	rw.Success(map[string]interface{}{
		"rebuilt": true,
		"spaces":  snapshot.Len(),
	})
}
