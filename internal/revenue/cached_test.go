// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package revenue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/revenuelens/internal/database"
)

func TestCachedAggregator_ServesRepeatsFromCache(t *testing.T) {
	store := &mockStore{}
	c := NewCachedAggregator(NewAggregator(store, nil), time.Minute)
	t.Cleanup(c.Close)
	ctx := context.Background()

	morning := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 1, 5, 21, 0, 0, 0, time.UTC)

	first, err := c.Total(ctx, NewDateRange(&morning, nil))
	if err != nil {
		t.Fatalf("Total: %v", err)
	}
	second, err := c.Total(ctx, NewDateRange(&evening, nil))
	if err != nil {
		t.Fatalf("Total: %v", err)
	}

	if first.String() != second.String() {
		t.Errorf("cached total = %s, want %s", second, first)
	}
	if n := store.sumCalls.Load(); n != 1 {
		t.Errorf("SumRevenue calls = %d; same calendar day should share an entry", n)
	}

	if _, err := c.ByRegion(ctx, NewDateRange(&morning, nil)); err != nil {
		t.Fatalf("ByRegion: %v", err)
	}
	if n := store.sumCalls.Load(); n != 2 {
		t.Errorf("SumRevenue calls = %d; views are cached separately", n)
	}

	status := c.CacheStatus()
	if !status.Enabled || status.Hits != 1 || status.Misses != 2 || status.Keys != 2 {
		t.Errorf("CacheStatus = %+v, want enabled with 1 hit, 2 misses, 2 keys", status)
	}
	if status.HitRate < 33.3 || status.HitRate > 33.4 {
		t.Errorf("HitRate = %v, want one third", status.HitRate)
	}
}

func TestCachedAggregator_InvalidateRecomputes(t *testing.T) {
	store := &mockStore{}
	c := NewCachedAggregator(NewAggregator(store, nil), time.Minute)
	t.Cleanup(c.Close)
	ctx := context.Background()

	if _, err := c.ByCategory(ctx, DateRange{}); err != nil {
		t.Fatalf("ByCategory: %v", err)
	}
	before := c.CacheStatus().Generation
	c.Invalidate()
	if _, err := c.ByCategory(ctx, DateRange{}); err != nil {
		t.Fatalf("ByCategory: %v", err)
	}

	if n := store.sumCalls.Load(); n != 2 {
		t.Errorf("SumRevenue calls = %d, want 2", n)
	}
	if got := c.CacheStatus().Generation; got != before+1 {
		t.Errorf("Generation = %d, want %d", got, before+1)
	}
}

func TestCachedAggregator_ErrorsAreNotCached(t *testing.T) {
	store := &mockStore{sumErr: errors.New("timeout")}
	c := NewCachedAggregator(NewAggregator(store, nil), time.Minute)
	t.Cleanup(c.Close)
	ctx := context.Background()

	for range 2 {
		if _, err := c.Total(ctx, DateRange{}); !errors.Is(err, ErrAggregationFailed) {
			t.Errorf("Total error = %v, want ErrAggregationFailed", err)
		}
	}
	if n := store.sumCalls.Load(); n != 2 {
		t.Errorf("SumRevenue calls = %d, want 2", n)
	}

	_, err := c.Total(ctx, NewDateRange(day(2024, 2, 1), day(2024, 1, 1)))
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("Total error = %v, want ErrInvalidRange", err)
	}
	if n := store.sumCalls.Load(); n != 2 {
		t.Errorf("SumRevenue calls = %d; an invalid range must not query", n)
	}
}

func TestCachedAggregator_Disabled(t *testing.T) {
	store := &mockStore{}
	c := NewCachedAggregator(NewAggregator(store, nil), 0)
	t.Cleanup(c.Close)
	ctx := context.Background()

	for range 3 {
		if _, err := c.ByProduct(ctx, DateRange{}); err != nil {
			t.Fatalf("ByProduct: %v", err)
		}
	}
	if n := store.sumCalls.Load(); n != 3 {
		t.Errorf("SumRevenue calls = %d, want 3", n)
	}
	if status := c.CacheStatus(); status != (CacheStatus{}) {
		t.Errorf("CacheStatus = %+v, want disabled zero value", status)
	}
	c.Invalidate()
	if c.BreakerState() != "closed" {
		t.Errorf("breaker = %s, want closed", c.BreakerState())
	}
}

// slowStore parks the first SumRevenue until release is closed.
type slowStore struct {
	mockStore
	entered chan struct{}
	release chan struct{}
}

func (s *slowStore) SumRevenue(ctx context.Context, f database.OrderDateFilter, g database.Grouping) ([]database.RevenueGroup, error) {
	select {
	case s.entered <- struct{}{}:
	default:
	}
	<-s.release
	return s.mockStore.SumRevenue(ctx, f, g)
}

func TestCachedAggregator_InFlightResultDroppedAfterInvalidate(t *testing.T) {
	store := &slowStore{entered: make(chan struct{}, 1), release: make(chan struct{})}
	c := NewCachedAggregator(NewAggregator(store, nil), time.Minute)
	t.Cleanup(c.Close)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := c.Total(ctx, DateRange{})
		done <- err
	}()

	<-store.entered
	c.Invalidate()
	close(store.release)
	if err := <-done; err != nil {
		t.Fatalf("in-flight Total: %v", err)
	}

	if _, err := c.Total(ctx, DateRange{}); err != nil {
		t.Fatalf("Total: %v", err)
	}
	if n := store.sumCalls.Load(); n != 2 {
		t.Errorf("SumRevenue calls = %d; a result computed before the invalidation must not be cached", n)
	}
}
