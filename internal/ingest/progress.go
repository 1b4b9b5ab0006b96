// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

const (
	// progressKey is the BadgerDB key for the last load summary.
	progressKey = "ingest:sales:last_load"
)

// ProgressTracker persists the stats of the most recent load.
type ProgressTracker interface {
	// Save persists stats, replacing any previous record.
	Save(ctx context.Context, stats *LoadStats) error

	// Load retrieves the last saved stats, or nil if none exist.
	Load(ctx context.Context) (*LoadStats, error)

	// Clear removes the saved record.
	Clear(ctx context.Context) error
}

// BadgerProgress implements ProgressTracker using BadgerDB, so the last load
// summary survives restarts.
type BadgerProgress struct {
	db    *badger.DB
	owned bool
}

// NewBadgerProgress creates a tracker on an already open BadgerDB instance.
func NewBadgerProgress(db *badger.DB) *BadgerProgress {
	return &BadgerProgress{db: db}
}

// OpenBadgerProgress opens (or creates) a BadgerDB directory at dir. Close
// releases it.
func OpenBadgerProgress(dir string) (*BadgerProgress, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open progress store: %w", err)
	}
	return &BadgerProgress{db: db, owned: true}, nil
}

// Close closes the underlying database when it was opened by OpenBadgerProgress.
func (p *BadgerProgress) Close() error {
	if !p.owned {
		return nil
	}
	return p.db.Close()
}

// Save persists the load stats to BadgerDB.
func (p *BadgerProgress) Save(_ context.Context, stats *LoadStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}

	return p.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(progressKey), data)
	})
}

// Load retrieves the last saved stats from BadgerDB.
// Returns nil, nil if nothing has been saved.
func (p *BadgerProgress) Load(_ context.Context) (*LoadStats, error) {
	var stats LoadStats

	err := p.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(progressKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stats)
		})
	})

	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}

	if stats.StartTime.IsZero() {
		return nil, nil
	}

	return &stats, nil
}

// Clear removes saved stats from BadgerDB.
func (p *BadgerProgress) Clear(_ context.Context) error {
	return p.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(progressKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// InMemoryProgress implements ProgressTracker in memory.
type InMemoryProgress struct {
	mu    sync.Mutex
	stats *LoadStats
}

// NewInMemoryProgress creates a new in-memory progress tracker.
func NewInMemoryProgress() *InMemoryProgress {
	return &InMemoryProgress{}
}

// Save stores a copy of stats.
func (p *InMemoryProgress) Save(_ context.Context, stats *LoadStats) error {
	statsCopy := *stats
	p.mu.Lock()
	p.stats = &statsCopy
	p.mu.Unlock()
	return nil
}

// Load returns a copy of the stored stats.
func (p *InMemoryProgress) Load(_ context.Context) (*LoadStats, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stats == nil {
		return nil, nil
	}
	statsCopy := *p.stats
	return &statsCopy, nil
}

// Clear removes the stored stats.
func (p *InMemoryProgress) Clear(_ context.Context) error {
	p.mu.Lock()
	p.stats = nil
	p.mu.Unlock()
	return nil
}
