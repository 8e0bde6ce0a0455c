// Spacesd - Tecnico Campus Spaces Directory Mirror
// Copyright 2026 Tecnico Spaces contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tecnicospaces/spacesd

package services

import (
	"context"
	"fmt"
)

// StartStopper is the lifecycle the rebuild scheduler exposes.
type StartStopper interface {
	Start() error
	Stop()
}

// SchedulerService adapts a Start/Stop component to suture's Serve pattern:
// start, block until cancellation, then stop.
type SchedulerService struct {
	scheduler StartStopper
	name      string
}

// NewSchedulerService wraps the rebuild scheduler as a supervised service.
func NewSchedulerService(scheduler StartStopper) *SchedulerService {
	return &SchedulerService{
		scheduler: scheduler,
		name:      "rebuild-scheduler",
	}
}

// Serve implements suture.Service.
func (s *SchedulerService) Serve(ctx context.Context) error {
	if err := s.scheduler.Start(); err != nil {
		return fmt.Errorf("scheduler start failed: %w", err)
	}

	<-ctx.Done()

	s.scheduler.Stop()
	return ctx.Err()
}

// String implements fmt.Stringer for logging.
func (s *SchedulerService) String() string {
	return s.name
}
