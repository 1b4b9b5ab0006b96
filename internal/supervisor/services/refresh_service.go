// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package services

import (
	"context"
	"fmt"
)

// RefreshScheduler is the Start/Stop lifecycle of *scheduler.Scheduler.
type RefreshScheduler interface {
	Start(ctx context.Context) error
	Stop() error
}

// RefreshSchedulerService adapts the refresh scheduler to suture's Serve:
// Start, wait for cancellation, Stop.
type RefreshSchedulerService struct {
	scheduler RefreshScheduler
	name      string
}

// NewRefreshSchedulerService wraps s.
//
//	sched := scheduler.New(loader, cfg.CSV.Path, cfg.Refresh, nil)
//	tree.AddIngestService(services.NewRefreshSchedulerService(sched))
func NewRefreshSchedulerService(s RefreshScheduler) *RefreshSchedulerService {
	return &RefreshSchedulerService{
		scheduler: s,
		name:      "refresh-scheduler",
	}
}

// Serve implements suture.Service. A Start failure is returned so suture
// retries with backoff.
func (s *RefreshSchedulerService) Serve(ctx context.Context) error {
	if err := s.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("refresh scheduler start failed: %w", err)
	}

	<-ctx.Done()

	if err := s.scheduler.Stop(); err != nil {
		return fmt.Errorf("refresh scheduler stop failed: %w", err)
	}
	return ctx.Err()
}

func (s *RefreshSchedulerService) String() string {
	return s.name
}
