// Spacesd - Tecnico Campus Spaces Directory Mirror
// Copyright 2026 Tecnico Spaces contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tecnicospaces/spacesd

package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/tecnicospaces/spacesd/internal/fenix"
)

func TestFetchScheduleTransformsEvents(t *testing.T) {
	client := &fakeClient{
		day: &fenix.SpaceDay{
			Events: []fenix.Event{
				{
					Type:   "LESSON",
					Course: &fenix.Course{Name: "Algorithms"},
					Title:  "raw lesson title",
					Period: &fenix.Period{Start: "05/03/2024 09:00", End: "05/03/2024 10:30"},
				},
				{
					Type:   "EVENT",
					Title:  "Department Meeting",
					Period: &fenix.Period{Start: "05/03/2024 14:00", End: "05/03/2024 15:00"},
				},
				{
					Type:   "EVENT",
					Period: &fenix.Period{Start: "05/03/2024 16:00", End: "05/03/2024 17:00"},
				},
			},
		},
	}

	events, err := NewScheduleFetcher(client).FetchSchedule(context.Background(), "2448131365017", "05/03/2024")
	if err != nil {
		t.Fatalf("FetchSchedule failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	lesson := events[0]
	if lesson.Title != "Algorithms" {
		t.Errorf("lesson must take course name as title, got %q", lesson.Title)
	}
	if lesson.Time.Start != "2024-03-05 09:00" || lesson.Time.End != "2024-03-05 10:30" {
		t.Errorf("unexpected converted times: %+v", lesson.Time)
	}
	if lesson.ID != "2448131365017202403050900" {
		t.Errorf("unexpected event ID %q", lesson.ID)
	}
	if lesson.IsEditable {
		t.Error("events must never be editable")
	}

	if events[1].Title != "Department Meeting" {
		t.Errorf("non-lesson must keep its title, got %q", events[1].Title)
	}
	if events[2].Title != "Untitled Event" {
		t.Errorf("untitled event must get a placeholder, got %q", events[2].Title)
	}
}

func TestLessonTitleUsesCourseNameVerbatim(t *testing.T) {
	client := &fakeClient{
		day: &fenix.SpaceDay{
			Events: []fenix.Event{
				{
					Type:   "LESSON",
					Course: &fenix.Course{Name: ""},
					Title:  "ignored raw title",
					Period: &fenix.Period{Start: "05/03/2024 09:00", End: "05/03/2024 10:00"},
				},
				{
					Type:   "LESSON",
					Title:  "lesson without course",
					Period: &fenix.Period{Start: "05/03/2024 11:00", End: "05/03/2024 12:00"},
				},
			},
		},
	}

	events, err := NewScheduleFetcher(client).FetchSchedule(context.Background(), "space1", "05/03/2024")
	if err != nil {
		t.Fatalf("FetchSchedule failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Title != "" {
		t.Errorf("lesson with an unnamed course keeps the empty course name, got %q", events[0].Title)
	}
	if events[1].Title != "lesson without course" {
		t.Errorf("lesson without a course falls back to the raw title, got %q", events[1].Title)
	}
}

func TestFetchScheduleDropsUnusableEvents(t *testing.T) {
	client := &fakeClient{
		day: &fenix.SpaceDay{
			Events: []fenix.Event{
				{Type: "EVENT", Title: "No period"},
				{Type: "EVENT", Title: "Half period", Period: &fenix.Period{Start: "05/03/2024 09:00"}},
				{Type: "EVENT", Title: "Garbage date", Period: &fenix.Period{Start: "garbage", End: "garbage"}},
				{Type: "EVENT", Title: "Fine", Period: &fenix.Period{Start: "05/03/2024 09:00", End: "05/03/2024 10:00"}},
			},
		},
	}

	events, err := NewScheduleFetcher(client).FetchSchedule(context.Background(), "space1", "05/03/2024")
	if err != nil {
		t.Fatalf("FetchSchedule failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected only the complete event, got %d", len(events))
	}
	if events[0].Title != "Fine" {
		t.Errorf("wrong survivor: %+v", events[0])
	}
}

func TestFetchScheduleEmptyDay(t *testing.T) {
	client := &fakeClient{day: &fenix.SpaceDay{}}

	events, err := NewScheduleFetcher(client).FetchSchedule(context.Background(), "space1", "")
	if err != nil {
		t.Fatalf("FetchSchedule failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected empty slice, got %d events", len(events))
	}
	if events == nil {
		t.Error("expected non-nil slice so the response serializes as []")
	}
}

func TestFetchScheduleUpstreamFailure(t *testing.T) {
	client := &fakeClient{dayErr: fenix.ErrUpstreamUnavailable}

	_, err := NewScheduleFetcher(client).FetchSchedule(context.Background(), "space1", "")
	if !errors.Is(err, fenix.ErrUpstreamUnavailable) {
		t.Errorf("expected upstream error propagated, got %v", err)
	}
}

func TestConvertEventTime(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"05/03/2024 09:00", "2024-03-05 09:00", true},
		{"31/12/2024 23:59", "2024-12-31 23:59", true},
		{"05-03-2024 09:00", "", false},
		{"05/03/2024", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := convertEventTime(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("convertEventTime(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
