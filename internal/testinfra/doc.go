// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

//go:build integration

// Package testinfra starts throwaway containers for integration tests with
// testcontainers-go.
//
// Every file carries the integration build tag, so the package and its
// Docker dependency only build with:
//
//	go test -tags integration ./...
//
// # PostgreSQL
//
// The embedded drivers (DuckDB, SQLite) run in unit tests. The PostgreSQL
// dialect is exercised against a real server:
//
//	func TestPostgresLoad(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    pg, err := testinfra.NewPostgresContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, pg)
//	    // database.New(&config.DatabaseConfig{Driver: "postgres", DSN: pg.DSN})
//	}
//
// Tests are skipped when Docker is unavailable. The first run pulls the image.
package testinfra
