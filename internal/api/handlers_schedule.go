// Spacesd - Tecnico Campus Spaces Directory Mirror
// Copyright 2026 Tecnico Spaces contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tecnicospaces/spacesd

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tecnicospaces/spacesd/internal/directory"
	"github.com/tecnicospaces/spacesd/internal/logging"
)

// GetSchedule handles GET /api/schedule/{space_id}. Schedules are fetched
// from the upstream on every request, never cached. The optional ?day query
// parameter selects a day in DD/MM/YYYY form; it defaults to today.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	spaceID := chi.URLParam(r, "space_id")
	if spaceID == "" {
		rw.BadRequest("Missing space ID")
		return
	}

	day := r.URL.Query().Get("day")
	if day != "" {
		if _, err := time.Parse(directory.DayFormat, day); err != nil {
			rw.BadRequest("Invalid day, expected DD/MM/YYYY")
			return
		}
	}

	events, err := h.schedules.FetchSchedule(r.Context(), spaceID, day)
	if err != nil {
		logging.Error().Err(err).Str("space_id", spaceID).Msg("Schedule fetch failed")
		rw.ExternalServiceError("fenix", err)
		return
	}

	rw.Success(events)
}
