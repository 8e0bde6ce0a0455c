// Spacesd - Tecnico Campus Spaces Directory Mirror
// Copyright 2026 Tecnico Spaces contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tecnicospaces/spacesd

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tecnicospaces/spacesd/internal/config"
	"github.com/tecnicospaces/spacesd/internal/directory"
	"github.com/tecnicospaces/spacesd/internal/fenix"
)

// fakeFenix implements fenix.ClientInterface for handler tests.
type fakeFenix struct {
	listing    []fenix.SpaceListing
	listingErr error
	spaces     map[string]*fenix.SpaceDetail
	day        *fenix.SpaceDay
	dayErr     error
}

func (f *fakeFenix) ListSpaces(ctx context.Context) ([]fenix.SpaceListing, error) {
	if f.listingErr != nil {
		return nil, f.listingErr
	}
	return f.listing, nil
}

func (f *fakeFenix) GetSpace(ctx context.Context, spaceID string) (*fenix.SpaceDetail, error) {
	detail, ok := f.spaces[spaceID]
	if !ok {
		return nil, fenix.ErrUpstreamUnavailable
	}
	return detail, nil
}

func (f *fakeFenix) GetSpaceDay(ctx context.Context, spaceID, day string) (*fenix.SpaceDay, error) {
	if f.dayErr != nil {
		return nil, f.dayErr
	}
	if f.day == nil {
		return &fenix.SpaceDay{}, nil
	}
	return f.day, nil
}

func newTestServer(t *testing.T, client *fakeFenix) (*httptest.Server, *directory.Service) {
	t.Helper()

	enricher := directory.NewEnricher(&config.DirectoryConfig{AlwaysOpen: []string{"V0.07"}})
	builder := directory.NewBuilder(client, directory.NewFetcher(client, enricher))
	service := directory.NewService(builder, directory.NewSnapshotCache())
	handler := NewHandler(service, directory.NewScheduleFetcher(client))

	router := NewRouter(handler, &config.SecurityConfig{
		RateLimitDisabled: true,
		CORSOrigins:       []string{"*"},
	})

	srv := httptest.NewServer(router.Setup())
	t.Cleanup(srv.Close)
	return srv, service
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
}

func doRequest(t *testing.T, method, url string) (int, envelope) {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.StatusCode, env
}

func TestGetSpacesBeforeFirstBuild(t *testing.T) {
	srv, _ := newTestServer(t, &fakeFenix{})

	status, env := doRequest(t, http.MethodGet, srv.URL+"/api/spaces")
	if status != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", status)
	}
	if env.Success || env.Error == nil || env.Error.Code != ErrCodeServiceUnavailable {
		t.Errorf("unexpected envelope: %+v", env)
	}
}

func TestGetSpacesAfterRebuild(t *testing.T) {
	client := &fakeFenix{
		listing: []fenix.SpaceListing{
			{ID: "c1", Name: "Alameda", Type: "CAMPUS"},
			{ID: "r1", Name: "V0.07", Type: "ROOM"},
		},
		spaces: map[string]*fenix.SpaceDetail{
			"c1": {ID: "c1", Name: "Alameda", Type: "CAMPUS"},
			"r1": {ID: "r1", Name: "V0.07", Type: "ROOM", Description: "V0.07 (0, Torre Sul, Alameda)"},
		},
	}
	srv, service := newTestServer(t, client)

	if err := service.RebuildNow(context.Background()); err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}

	status, env := doRequest(t, http.MethodGet, srv.URL+"/api/spaces")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !env.Success {
		t.Fatalf("unexpected envelope: %+v", env)
	}

	var snapshot map[string][]map[string]interface{}
	if err := json.Unmarshal(env.Data, &snapshot); err != nil {
		t.Fatalf("failed to decode snapshot: %v", err)
	}

	for _, bucket := range []string{"CAMPUS", "BUILDING", "FLOOR", "ROOM", "ROOM_SUBDIVISION"} {
		if _, ok := snapshot[bucket]; !ok {
			t.Errorf("missing bucket %s in response", bucket)
		}
	}
	if len(snapshot["ROOM"]) != 1 {
		t.Fatalf("expected 1 room, got %d", len(snapshot["ROOM"]))
	}
	room := snapshot["ROOM"][0]
	if room["alwaysOpen"] != true {
		t.Errorf("expected alwaysOpen=true on V0.07, got %v", room["alwaysOpen"])
	}
	if campusEntry := snapshot["CAMPUS"][0]; campusEntry["location"] != nil {
		t.Errorf("campus without parseable description must serialize null location, got %v", campusEntry["location"])
	}
}

func TestTriggerRebuild(t *testing.T) {
	client := &fakeFenix{
		listing: []fenix.SpaceListing{{ID: "c1", Name: "Alameda", Type: "CAMPUS"}},
		spaces: map[string]*fenix.SpaceDetail{
			"c1": {ID: "c1", Name: "Alameda", Type: "CAMPUS"},
		},
	}
	srv, _ := newTestServer(t, client)

	status, env := doRequest(t, http.MethodPost, srv.URL+"/api/rebuild")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !env.Success {
		t.Errorf("unexpected envelope: %+v", env)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if result["rebuilt"] != true || result["spaces"] != float64(1) {
		t.Errorf("unexpected result: %v", result)
	}
}

func TestTriggerRebuildUpstreamFailure(t *testing.T) {
	srv, _ := newTestServer(t, &fakeFenix{listingErr: fenix.ErrUpstreamUnavailable})

	status, env := doRequest(t, http.MethodPost, srv.URL+"/api/rebuild")
	if status != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", status)
	}
	if env.Error == nil || env.Error.Code != ErrCodeExternalServiceFail {
		t.Errorf("unexpected envelope: %+v", env)
	}
}

func TestTriggerRebuildRequiresPost(t *testing.T) {
	srv, _ := newTestServer(t, &fakeFenix{})

	status, env := doRequest(t, http.MethodGet, srv.URL+"/api/rebuild")
	if status != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", status)
	}
	if env.Error == nil || env.Error.Code != ErrCodeMethodNotAllowed {
		t.Errorf("unexpected envelope: %+v", env)
	}
}

func TestGetSchedule(t *testing.T) {
	client := &fakeFenix{
		day: &fenix.SpaceDay{
			Events: []fenix.Event{
				{
					Type:   "LESSON",
					Course: &fenix.Course{Name: "Algorithms"},
					Period: &fenix.Period{Start: "05/03/2024 09:00", End: "05/03/2024 10:30"},
				},
			},
		},
	}
	srv, _ := newTestServer(t, client)

	status, env := doRequest(t, http.MethodGet, srv.URL+"/api/schedule/2448131365017?day=05/03/2024")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	var events []map[string]interface{}
	if err := json.Unmarshal(env.Data, &events); err != nil {
		t.Fatalf("failed to decode events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0]["title"] != "Algorithms" {
		t.Errorf("unexpected event: %v", events[0])
	}
	if events[0]["isEditable"] != false {
		t.Errorf("expected isEditable=false, got %v", events[0]["isEditable"])
	}
}

func TestGetScheduleInvalidDay(t *testing.T) {
	srv, _ := newTestServer(t, &fakeFenix{})

	status, env := doRequest(t, http.MethodGet, srv.URL+"/api/schedule/space1?day=2024-03-05")
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if env.Error == nil || env.Error.Code != ErrCodeBadRequest {
		t.Errorf("unexpected envelope: %+v", env)
	}
}

func TestGetScheduleUpstreamFailure(t *testing.T) {
	srv, _ := newTestServer(t, &fakeFenix{dayErr: fenix.ErrUpstreamUnavailable})

	status, env := doRequest(t, http.MethodGet, srv.URL+"/api/schedule/space1")
	if status != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", status)
	}
	if env.Error == nil || env.Error.Code != ErrCodeExternalServiceFail {
		t.Errorf("unexpected envelope: %+v", env)
	}
}

func TestWelcome(t *testing.T) {
	srv, _ := newTestServer(t, &fakeFenix{})

	status, env := doRequest(t, http.MethodGet, srv.URL+"/")
	if status != http.StatusOK || !env.Success {
		t.Fatalf("expected 200 success, got %d %+v", status, env)
	}
}

func TestHealthEndpoints(t *testing.T) {
	client := &fakeFenix{
		listing: []fenix.SpaceListing{{ID: "c1", Name: "Alameda", Type: "CAMPUS"}},
		spaces: map[string]*fenix.SpaceDetail{
			"c1": {ID: "c1", Name: "Alameda", Type: "CAMPUS"},
		},
	}
	srv, service := newTestServer(t, client)

	status, _ := doRequest(t, http.MethodGet, srv.URL+"/api/v1/health/live")
	if status != http.StatusOK {
		t.Errorf("liveness must always be 200, got %d", status)
	}

	status, _ = doRequest(t, http.MethodGet, srv.URL+"/api/v1/health/ready")
	if status != http.StatusServiceUnavailable {
		t.Errorf("expected 503 before first build, got %d", status)
	}

	if err := service.RebuildNow(context.Background()); err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}

	status, _ = doRequest(t, http.MethodGet, srv.URL+"/api/v1/health/ready")
	if status != http.StatusOK {
		t.Errorf("expected 200 after build, got %d", status)
	}

	status, env := doRequest(t, http.MethodGet, srv.URL+"/api/v1/health")
	if status != http.StatusOK || !env.Success {
		t.Errorf("expected healthy response, got %d %+v", status, env)
	}
}

func TestNotFoundIsJSON(t *testing.T) {
	srv, _ := newTestServer(t, &fakeFenix{})

	status, env := doRequest(t, http.MethodGet, srv.URL+"/nope")
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("unexpected envelope: %+v", env)
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv, _ := newTestServer(t, &fakeFenix{})

	resp, err := http.Get(srv.URL + "/api/spaces")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if got := resp.Header.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("missing nosniff header, got %q", got)
	}
	if got := resp.Header.Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("missing frame options header, got %q", got)
	}
}
