// Spacesd - Tecnico Campus Spaces Directory Mirror
// Copyright 2026 Tecnico Spaces contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tecnicospaces/spacesd

package scheduler

import (
	"context"
	"testing"

	"github.com/tecnicospaces/spacesd/internal/config"
	"github.com/tecnicospaces/spacesd/internal/directory"
	"github.com/tecnicospaces/spacesd/internal/fenix"
)

type stubClient struct {
	listCalls int
}

func (s *stubClient) ListSpaces(ctx context.Context) ([]fenix.SpaceListing, error) {
	s.listCalls++
	return []fenix.SpaceListing{}, nil
}

func (s *stubClient) GetSpace(ctx context.Context, spaceID string) (*fenix.SpaceDetail, error) {
	return nil, fenix.ErrUpstreamUnavailable
}

func (s *stubClient) GetSpaceDay(ctx context.Context, spaceID, day string) (*fenix.SpaceDay, error) {
	return nil, fenix.ErrUpstreamUnavailable
}

func newTestScheduler(schedule string) (*Scheduler, *stubClient, *directory.SnapshotCache) {
	client := &stubClient{}
	enricher := directory.NewEnricher(&config.DirectoryConfig{})
	builder := directory.NewBuilder(client, directory.NewFetcher(client, enricher))
	cache := directory.NewSnapshotCache()
	return New(directory.NewService(builder, cache), schedule), client, cache
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	s, _, _ := newTestScheduler("not a cron expression")
	if err := s.Start(); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

func TestStartStopLifecycle(t *testing.T) {
	s, _, _ := newTestScheduler("0 3 * * *")

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := s.Start(); err == nil {
		t.Error("second Start must fail")
	}

	s.Stop()
	// Stop on a stopped scheduler is a no-op.
	s.Stop()

	if err := s.Start(); err != nil {
		t.Errorf("restart after Stop failed: %v", err)
	}
	s.Stop()
}

func TestRunRebuildInstallsSnapshot(t *testing.T) {
	s, client, cache := newTestScheduler("0 3 * * *")

	s.runRebuild()

	if client.listCalls != 1 {
		t.Errorf("expected one listing call, got %d", client.listCalls)
	}
	if !cache.Ready() {
		t.Error("rebuild should have installed a snapshot")
	}
}
