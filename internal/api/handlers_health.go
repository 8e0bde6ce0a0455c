// Spacesd - Tecnico Campus Spaces Directory Mirror
// Copyright 2026 Tecnico Spaces contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tecnicospaces/spacesd

package api

import (
	"net/http"
	"time"
)

// Health handles health check requests. The service is degraded until the
// first snapshot has been installed.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	cacheReady := h.service.Cache().Ready()

	status := "healthy"
	if !cacheReady {
		status = "degraded"
	}

	var lastBuiltPtr *time.Time
	if lastBuilt := h.service.Cache().LastBuilt(); !lastBuilt.IsZero() {
		lastBuiltPtr = &lastBuilt
	}

	WriteSuccess(w, r, map[string]interface{}{
		"status":              status,
		"version":             Version,
		"cache_ready":         cacheReady,
		"rebuild_in_progress": h.service.RebuildInProgress(),
		"last_built":          lastBuiltPtr,
		"uptime":              time.Since(h.startTime).Seconds(),
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Ready once a snapshot is installed and the read path can serve.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ready := h.service.Cache().Ready()

	if !ready {
		NewResponseWriter(w, r).ServiceUnavailable("Space cache not built yet")
		return
	}

	WriteSuccess(w, r, map[string]interface{}{
		"ready_to_serve": true,
		"uptime":         time.Since(h.startTime).Seconds(),
	})
}
