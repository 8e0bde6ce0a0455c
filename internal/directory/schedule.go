// Spacesd - Tecnico Campus Spaces Directory Mirror
// Copyright 2026 Tecnico Spaces contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tecnicospaces/spacesd

package directory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tecnicospaces/spacesd/internal/fenix"
	"github.com/tecnicospaces/spacesd/internal/logging"
	"github.com/tecnicospaces/spacesd/internal/metrics"
	"github.com/tecnicospaces/spacesd/internal/models"
)

// DayFormat is the wire format the upstream expects for day parameters.
const DayFormat = "02/01/2006"

// ScheduleFetcher fetches and transforms one space's schedule on demand.
// Schedules are never cached; every request goes to the upstream.
type ScheduleFetcher struct {
	client fenix.ClientInterface
}

// NewScheduleFetcher creates a ScheduleFetcher over the given client.
func NewScheduleFetcher(client fenix.ClientInterface) *ScheduleFetcher {
	return &ScheduleFetcher{client: client}
}

// FetchSchedule returns the transformed events for a space on the given
// day. An empty day means today. Events with missing or malformed period
// bounds are dropped.
func (f *ScheduleFetcher) FetchSchedule(ctx context.Context, spaceID, day string) ([]models.ScheduleEvent, error) {
	if day == "" {
		day = time.Now().Format(DayFormat)
	}

	payload, err := f.client.GetSpaceDay(ctx, spaceID, day)
	if err != nil {
		metrics.ScheduleFetchesTotal.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("fetch schedule for space %s: %w", spaceID, err)
	}
	metrics.ScheduleFetchesTotal.WithLabelValues("success").Inc()

	events := make([]models.ScheduleEvent, 0, len(payload.Events))
	for _, raw := range payload.Events {
		event, ok := transformEvent(spaceID, raw)
		if !ok {
			metrics.ScheduleEventsDropped.Inc()
			logging.Debug().Str("space_id", spaceID).Str("title", raw.Title).Msg("Dropping event with unusable period")
			continue
		}
		events = append(events, event)
	}

	return events, nil
}

// transformEvent converts one raw upstream event. Lessons with a course take
// the course name verbatim, even when it is empty; everything else falls
// back to the raw title or a placeholder.
func transformEvent(spaceID string, raw fenix.Event) (models.ScheduleEvent, bool) {
	var title string
	if raw.Type == "LESSON" && raw.Course != nil {
		title = raw.Course.Name
	} else {
		title = raw.Title
		if title == "" {
			title = "Untitled Event"
		}
	}

	if raw.Period == nil || raw.Period.Start == "" || raw.Period.End == "" {
		return models.ScheduleEvent{}, false
	}

	start, ok := convertEventTime(raw.Period.Start)
	if !ok {
		return models.ScheduleEvent{}, false
	}
	end, ok := convertEventTime(raw.Period.End)
	if !ok {
		return models.ScheduleEvent{}, false
	}

	return models.ScheduleEvent{
		Title:      title,
		Time:       models.EventTime{Start: start, End: end},
		IsEditable: false,
		ID:         spaceID + stripForID(start),
	}, true
}

// convertEventTime reassembles "DD/MM/YYYY HH:MM" into "YYYY-MM-DD HH:MM"
// without interpreting the value as a timestamp. The upstream already emits
// local campus time and it is passed through as-is.
func convertEventTime(raw string) (string, bool) {
	datePart, timePart, found := strings.Cut(raw, " ")
	if !found {
		return "", false
	}
	fields := strings.Split(datePart, "/")
	if len(fields) != 3 {
		return "", false
	}
	return fields[2] + "-" + fields[1] + "-" + fields[0] + " " + timePart, true
}

// stripForID removes whitespace, colons, and hyphens so the event ID is a
// compact space-ID plus start-time key.
func stripForID(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', ':', '-':
			return -1
		}
		return r
	}, s)
}
