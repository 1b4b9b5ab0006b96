// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

// Package ingest loads the sales CSV feed into the relational store.
//
// # Pipeline
//
//	sales CSV
//	    ↓
//	RowReader (mapper.go): header-tolerant parse into typed Rows
//	    ↓
//	Loader.Load (loader.go): one transaction
//	    1. optional overwrite: orders, products, customers cleared
//	    2. dimension phase: one representative row per product/customer id
//	    3. fact phase: order upserts, flushed every FlushEvery rows
//	    4. commit
//	    ↓
//	internal/database
//
// # Merge Rules
//
//   - The first row mentioning a product or customer id is its source of truth
//     for that load.
//   - Existing products and customers are updated only where the incoming
//     value is non-empty; an empty email never erases a stored one.
//   - Orders are keyed by the feed's integer id. An existing order is fully
//     overwritten, except that an empty incoming customer id keeps the stored
//     customer id. Repeated ids within one feed update the earlier write.
//
// Loading the same feed twice leaves the store unchanged.
//
// # Errors
//
// ErrSourceNotFound and ErrMalformedRow (a *RowError) are returned before any
// write. Store failures roll back and are wrapped in ErrLoadFailed. A second
// Load while one is running returns ErrLoadInProgress.
//
// # Cancellation
//
// The context is checked between rows. Store calls run on a context detached
// from cancellation, so a cancelled load commits the rows it processed and
// returns their count.
//
// # Progress Tracking
//
// The stats of the most recent load are saved through a ProgressTracker.
// BadgerProgress keeps them across restarts; InMemoryProgress is used when no
// progress path is configured.
//
// # Example Usage
//
//	loader := ingest.NewLoader(ingest.DatabaseStore(db), &cfg.Ingest, progress)
//	n, err := loader.Load(ctx, cfg.CSV.Path, false)
//	if errors.Is(err, ingest.ErrSourceNotFound) {
//	    // report the missing feed
//	}
package ingest
