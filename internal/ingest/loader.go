// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/revenuelens/internal/config"
	"github.com/tomtom215/revenuelens/internal/database"
	"github.com/tomtom215/revenuelens/internal/logging"
	"github.com/tomtom215/revenuelens/internal/metrics"
	"github.com/tomtom215/revenuelens/internal/models"
)

// DefaultFlushEvery is the number of fact rows between flush checkpoints.
const DefaultFlushEvery = 500

// LoadTx is the transactional write surface one load needs.
// database.LoadTx satisfies it.
type LoadTx interface {
	Commit() error
	Rollback() error
	ClearAll(ctx context.Context) error

	ProductsByID(ctx context.Context, ids []string) (map[string]models.Product, error)
	CustomersByID(ctx context.Context, ids []string) (map[string]models.Customer, error)
	OrderCustomers(ctx context.Context, ids []int64) (map[int64]*string, error)

	WriteProducts(ctx context.Context, inserts, updates []models.Product) error
	WriteCustomers(ctx context.Context, inserts, updates []models.Customer) error
	WriteOrders(ctx context.Context, inserts, updates []models.Order) error
}

// Store opens load transactions.
type Store interface {
	BeginLoad(ctx context.Context) (LoadTx, error)
}

// DatabaseStore adapts *database.DB to Store.
func DatabaseStore(db *database.DB) Store {
	return dbStore{db: db}
}

type dbStore struct {
	db *database.DB
}

func (s dbStore) BeginLoad(ctx context.Context) (LoadTx, error) {
	tx, err := s.db.BeginLoad(ctx)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// Loader merges the sales feed into the store. At most one load runs at a
// time; a concurrent call fails with ErrLoadInProgress.
type Loader struct {
	store      Store
	progress   ProgressTracker
	flushEvery int

	mu          sync.RWMutex
	running     bool
	stats       *LoadStats
	onCompleted func(processed int, duration time.Duration)
}

// NewLoader creates a loader. progress may be nil.
func NewLoader(store Store, cfg *config.IngestConfig, progress ProgressTracker) *Loader {
	flushEvery := DefaultFlushEvery
	if cfg != nil && cfg.FlushEvery > 0 {
		flushEvery = cfg.FlushEvery
	}
	return &Loader{
		store:      store,
		progress:   progress,
		flushEvery: flushEvery,
	}
}

// SetOnLoadCompleted registers fn to run after every load that commits,
// including a cancelled load that committed a prefix. It runs on the loading
// goroutine after the in-progress flag is cleared.
func (l *Loader) SetOnLoadCompleted(fn func(processed int, duration time.Duration)) {
	l.mu.Lock()
	l.onCompleted = fn
	l.mu.Unlock()
}

// Load reads source and merges it into the store in one transaction,
// returning the number of rows processed.
//
// With overwrite set, all orders, products and customers are deleted first.
// Mapping failures return ErrSourceNotFound or ErrMalformedRow before any
// write. Store failures roll back and return ErrLoadFailed.
//
// Cancellation is checked between rows. When ctx is cancelled mid-batch the
// rows processed so far are committed and Load returns their count with a nil
// error.
func (l *Loader) Load(ctx context.Context, source string, overwrite bool) (int, error) {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		metrics.LoadErrors.WithLabelValues(errorType(ErrLoadInProgress)).Inc()
		return 0, ErrLoadInProgress
	}
	l.running = true
	l.stats = &LoadStats{
		LoadID:    logging.GenerateLoadID(),
		Source:    source,
		Overwrite: overwrite,
		StartTime: time.Now(),
	}
	loadID := l.stats.LoadID
	l.mu.Unlock()
	metrics.SetLoadInProgress(true)

	ctx = logging.ContextWithLoadID(ctx, loadID)
	logger := logging.Ctx(ctx)
	logger.Info().Str("source", source).Bool("overwrite", overwrite).Msg("Starting sales load")

	processed, err := l.load(ctx, source, overwrite)

	l.mu.Lock()
	l.running = false
	l.stats.EndTime = time.Now()
	if err != nil {
		l.stats.Error = err.Error()
	}
	stats := *l.stats
	onCompleted := l.onCompleted
	l.mu.Unlock()
	metrics.SetLoadInProgress(false)
	metrics.RecordLoad(stats.Duration(), processed, errorType(err))

	if l.progress != nil {
		if saveErr := l.progress.Save(context.WithoutCancel(ctx), &stats); saveErr != nil {
			logger.Warn().Err(saveErr).Msg("Failed to save load summary")
		}
	}

	if err != nil {
		logger.Error().Err(err).Dur("duration", stats.Duration()).Msg("Sales load failed")
		return 0, err
	}

	logger.Info().
		Int("processed", stats.Processed).
		Int("products_inserted", stats.ProductsInserted).
		Int("products_updated", stats.ProductsUpdated).
		Int("customers_inserted", stats.CustomersInserted).
		Int("customers_updated", stats.CustomersUpdated).
		Int("orders_inserted", stats.OrdersInserted).
		Int("orders_updated", stats.OrdersUpdated).
		Bool("cancelled", stats.Cancelled).
		Dur("duration", stats.Duration()).
		Msg("Sales load completed")

	if onCompleted != nil {
		onCompleted(processed, stats.Duration())
	}
	return processed, nil
}

func (l *Loader) load(ctx context.Context, source string, overwrite bool) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	rows, err := ReadFile(source)
	if err != nil {
		return 0, err
	}
	l.updateStats(func(s *LoadStats) { s.TotalRows = len(rows) })

	// Store calls run to completion even when ctx is cancelled; cancellation
	// only stops row processing.
	storeCtx := context.WithoutCancel(ctx)

	tx, err := l.store.BeginLoad(storeCtx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			logging.Ctx(ctx).Warn().Err(rbErr).Msg("Rollback failed")
		}
	}()

	if overwrite {
		if err := tx.ClearAll(storeCtx); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrLoadFailed, err)
		}
	}

	if err := l.writeDimensions(storeCtx, tx, rows); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	processed, err := l.writeOrders(ctx, storeCtx, tx, rows)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	committed = true
	return processed, nil
}

// writeDimensions upserts one representative row per product and customer id.
func (l *Loader) writeDimensions(ctx context.Context, tx LoadTx, rows []Row) error {
	dims := groupDimensions(rows)

	storedProducts, err := tx.ProductsByID(ctx, dims.productIDs)
	if err != nil {
		return err
	}
	var productInserts, productUpdates []models.Product
	for _, id := range dims.productIDs {
		stored, exists := storedProducts[id]
		p, changed := mergeProduct(stored, exists, &rows[dims.products[id]])
		switch {
		case !exists:
			productInserts = append(productInserts, p)
		case changed:
			productUpdates = append(productUpdates, p)
		}
	}
	if err := tx.WriteProducts(ctx, productInserts, productUpdates); err != nil {
		return err
	}

	storedCustomers, err := tx.CustomersByID(ctx, dims.customerIDs)
	if err != nil {
		return err
	}
	var customerInserts, customerUpdates []models.Customer
	for _, id := range dims.customerIDs {
		stored, exists := storedCustomers[id]
		c, changed := mergeCustomer(stored, exists, &rows[dims.customers[id]])
		switch {
		case !exists:
			customerInserts = append(customerInserts, c)
		case changed:
			customerUpdates = append(customerUpdates, c)
		}
	}
	if err := tx.WriteCustomers(ctx, customerInserts, customerUpdates); err != nil {
		return err
	}

	l.updateStats(func(s *LoadStats) {
		s.ProductsInserted = len(productInserts)
		s.ProductsUpdated = len(productUpdates)
		s.CustomersInserted = len(customerInserts)
		s.CustomersUpdated = len(customerUpdates)
	})
	return nil
}

// writeOrders upserts every row in file order, flushing every flushEvery
// rows. cancelCtx is only consulted between rows; store calls use storeCtx.
func (l *Loader) writeOrders(cancelCtx, storeCtx context.Context, tx LoadTx, rows []Row) (int, error) {
	// Customer id of every order written by this load so far. A later row
	// with the same id is an update of that write.
	written := make(map[int64]*string, len(rows))
	processed := 0
	cancelled := false

	for start := 0; start < len(rows) && !cancelled; start += l.flushEvery {
		if cancelCtx.Err() != nil {
			cancelled = true
			break
		}
		end := min(start+l.flushEvery, len(rows))
		chunk := rows[start:end]

		stored, err := tx.OrderCustomers(storeCtx, unseenOrderIDs(chunk, written))
		if err != nil {
			return processed, err
		}

		var inserts, updates []models.Order
		for i := range chunk {
			if cancelCtx.Err() != nil {
				cancelled = true
				break
			}
			r := &chunk[i]
			customer, exists := written[r.OrderID]
			if !exists {
				customer, exists = stored[r.OrderID]
			}
			o := buildOrder(r, customer, exists)
			if exists {
				updates = append(updates, o)
			} else {
				inserts = append(inserts, o)
			}
			written[r.OrderID] = o.CustomerID
		}

		if err := l.flush(storeCtx, tx, inserts, updates); err != nil {
			return processed, err
		}
		processed += len(inserts) + len(updates)
	}

	if cancelled {
		logging.Ctx(storeCtx).Warn().Int("processed", processed).Int("total", len(rows)).
			Msg("Sales load cancelled, committing processed rows")
	}
	l.updateStats(func(s *LoadStats) { s.Cancelled = cancelled })
	return processed, nil
}

func (l *Loader) flush(ctx context.Context, tx LoadTx, inserts, updates []models.Order) error {
	n := len(inserts) + len(updates)
	if n == 0 {
		return nil
	}
	if err := tx.WriteOrders(ctx, inserts, updates); err != nil {
		return err
	}
	metrics.RecordFlush(n)

	var processed int
	l.updateStats(func(s *LoadStats) {
		s.Processed += n
		s.OrdersInserted += len(inserts)
		s.OrdersUpdated += len(updates)
		s.Flushes++
		processed = s.Processed
	})
	logging.Ctx(ctx).Debug().Int("flushed", n).Int("processed", processed).Msg("Flush checkpoint")
	return nil
}

// unseenOrderIDs returns the distinct ids in chunk not yet written by this load.
func unseenOrderIDs(chunk []Row, written map[int64]*string) []int64 {
	seen := make(map[int64]struct{}, len(chunk))
	ids := make([]int64, 0, len(chunk))
	for i := range chunk {
		id := chunk[i].OrderID
		if _, ok := written[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func (l *Loader) updateStats(fn func(*LoadStats)) {
	l.mu.Lock()
	fn(l.stats)
	l.mu.Unlock()
}

// IsRunning returns whether a load is in progress.
func (l *Loader) IsRunning() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.running
}

// GetStats returns a copy of the current or most recent load's stats, or nil
// if no load has run in this process.
func (l *Loader) GetStats() *LoadStats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.stats == nil {
		return nil
	}
	statsCopy := *l.stats
	return &statsCopy
}

// Summary describes the running load, or the last one recorded by the
// progress tracker. It returns nil when no load is known.
func (l *Loader) Summary(ctx context.Context) (*LoadSummary, error) {
	running := l.IsRunning()
	if stats := l.GetStats(); stats != nil {
		return stats.ToSummary(running), nil
	}
	if l.progress == nil {
		return nil, nil
	}
	stats, err := l.progress.Load(ctx)
	if err != nil || stats == nil {
		return nil, err
	}
	return stats.ToSummary(false), nil
}
