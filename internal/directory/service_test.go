// Spacesd - Tecnico Campus Spaces Directory Mirror
// Copyright 2026 Tecnico Spaces contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tecnicospaces/spacesd

package directory

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"

	"github.com/tecnicospaces/spacesd/internal/fenix"
	"github.com/tecnicospaces/spacesd/internal/models"
)

func TestCacheUnavailableBeforeFirstBuild(t *testing.T) {
	cache := NewSnapshotCache()

	if cache.Ready() {
		t.Error("fresh cache must not report ready")
	}
	_, err := cache.Get()
	if !errors.Is(err, ErrCacheUnavailable) {
		t.Errorf("expected ErrCacheUnavailable, got %v", err)
	}
	if !cache.LastBuilt().IsZero() {
		t.Error("fresh cache must report zero build time")
	}
}

func TestRebuildInstallsSnapshot(t *testing.T) {
	client := &fakeClient{
		listing: []fenix.SpaceListing{{ID: "c1", Name: "Alameda", Type: "CAMPUS"}},
		spaces: map[string]*fenix.SpaceDetail{
			"c1": {ID: "c1", Name: "Alameda", Type: "CAMPUS"},
		},
	}
	cache := NewSnapshotCache()
	svc := NewService(newTestBuilder(client), cache)

	if err := svc.RebuildNow(context.Background()); err != nil {
		t.Fatalf("RebuildNow failed: %v", err)
	}

	snapshot, err := cache.Get()
	if err != nil {
		t.Fatalf("cache should be available after rebuild: %v", err)
	}
	if len(snapshot[models.TypeCampus]) != 1 {
		t.Errorf("unexpected snapshot: %+v", snapshot)
	}
	if cache.LastBuilt().IsZero() {
		t.Error("build time should be set after install")
	}
}

func TestFailedRebuildKeepsPreviousSnapshot(t *testing.T) {
	client := &fakeClient{
		listing: []fenix.SpaceListing{{ID: "c1", Name: "Alameda", Type: "CAMPUS"}},
		spaces: map[string]*fenix.SpaceDetail{
			"c1": {ID: "c1", Name: "Alameda", Type: "CAMPUS"},
		},
	}
	cache := NewSnapshotCache()
	svc := NewService(newTestBuilder(client), cache)

	if err := svc.RebuildNow(context.Background()); err != nil {
		t.Fatalf("first rebuild failed: %v", err)
	}
	firstBuilt := cache.LastBuilt()

	client.listingErr = fenix.ErrUpstreamUnavailable
	if err := svc.RebuildNow(context.Background()); err == nil {
		t.Fatal("expected second rebuild to fail")
	}

	snapshot, err := cache.Get()
	if err != nil {
		t.Fatalf("old snapshot must survive a failed rebuild: %v", err)
	}
	if len(snapshot[models.TypeCampus]) != 1 {
		t.Errorf("old snapshot content lost: %+v", snapshot)
	}
	if !cache.LastBuilt().Equal(firstBuilt) {
		t.Error("build time must not advance on a failed rebuild")
	}
}

func TestNullListingDoesNotReplaceSnapshot(t *testing.T) {
	client := &fakeClient{
		listing: []fenix.SpaceListing{{ID: "c1", Name: "Alameda", Type: "CAMPUS"}},
		spaces: map[string]*fenix.SpaceDetail{
			"c1": {ID: "c1", Name: "Alameda", Type: "CAMPUS"},
		},
	}
	cache := NewSnapshotCache()
	svc := NewService(newTestBuilder(client), cache)

	if err := svc.RebuildNow(context.Background()); err != nil {
		t.Fatalf("first rebuild failed: %v", err)
	}

	// A null upstream body decodes to a nil listing.
	client.listing = nil
	if err := svc.RebuildNow(context.Background()); !errors.Is(err, fenix.ErrUpstreamUnavailable) {
		t.Fatalf("expected nil listing to fail the rebuild, got %v", err)
	}

	snapshot, err := cache.Get()
	if err != nil {
		t.Fatalf("previous snapshot must survive: %v", err)
	}
	if snapshot.Len() != 1 {
		t.Errorf("previous snapshot must not be replaced by an empty one, got %d spaces", snapshot.Len())
	}
}

func TestConcurrentRebuildRejected(t *testing.T) {
	block := make(chan struct{})
	client := &fakeClient{blockBuild: block}
	svc := NewService(newTestBuilder(client), NewSnapshotCache())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = svc.RebuildNow(context.Background())
	}()

	// Wait for the first rebuild to reach the blocked listing call.
	for !svc.RebuildInProgress() {
		runtime.Gosched()
	}

	err := svc.RebuildNow(context.Background())
	if !errors.Is(err, ErrRebuildInProgress) {
		t.Errorf("expected ErrRebuildInProgress, got %v", err)
	}

	close(block)
	wg.Wait()

	if svc.RebuildInProgress() {
		t.Error("in-progress flag must clear after rebuild finishes")
	}
}
