// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/tomtom215/revenuelens/docs" // Import generated swagger docs
	"github.com/tomtom215/revenuelens/internal/api"
	"github.com/tomtom215/revenuelens/internal/config"
	"github.com/tomtom215/revenuelens/internal/database"
	"github.com/tomtom215/revenuelens/internal/ingest"
	"github.com/tomtom215/revenuelens/internal/logging"
	"github.com/tomtom215/revenuelens/internal/metrics"
	"github.com/tomtom215/revenuelens/internal/revenue"
	"github.com/tomtom215/revenuelens/internal/scheduler"
	"github.com/tomtom215/revenuelens/internal/supervisor"
	"github.com/tomtom215/revenuelens/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const httpShutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("version", version).
		Str("driver", cfg.Database.ResolvedDriver()).
		Str("csv_path", cfg.CSV.Path).
		Bool("refresh_enabled", cfg.Refresh.Enabled).
		Int("refresh_hour", cfg.Refresh.Hour).
		Msg("Starting RevenueLens")

	if err := run(cfg); err != nil {
		logging.Error().Err(err).Msg("RevenueLens stopped with error")
		os.Exit(1)
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	metrics.SetAppInfo(version, db.Driver())
	logging.Info().
		Str("driver", db.Driver()).
		Bool("decimal_aggregate", db.SupportsDecimalAggregate()).
		Msg("Database initialized")

	progress, closeProgress, err := openProgress(cfg.Ingest.ProgressPath)
	if err != nil {
		return err
	}
	defer closeProgress()

	loader := ingest.NewLoader(ingest.DatabaseStore(db), &cfg.Ingest, progress)
	views := revenue.NewCachedAggregator(revenue.NewAggregator(db, &cfg.Analytics), cfg.Analytics.CacheTTL)
	defer views.Close()
	loader.SetOnLoadCompleted(func(processed int, duration time.Duration) {
		views.Invalidate()
		logging.Debug().Int("processed", processed).Dur("duration", duration).Msg("Revenue cache invalidated after load")
	})
	refresh := scheduler.New(loader, cfg.CSV.Path, cfg.Refresh, nil)

	handler := api.NewHandler(db, loader, views, refresh, cfg.CSV.Path, version)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)))

	// No WriteTimeout: POST /refresh holds its response until the load ends.
	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		IdleTimeout:       2 * time.Minute,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}
	tree.AddIngestService(services.NewRefreshSchedulerService(refresh))
	tree.AddAPIService(services.NewHTTPServerService(server, httpShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("Services added to supervisor tree")

	errCh := tree.ServeBackground(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}
	if errors.Is(serveErr, context.Canceled) {
		serveErr = nil
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}
	return serveErr
}

// openProgress returns the badger-backed tracker when a path is configured,
// otherwise an in-memory one.
func openProgress(path string) (ingest.ProgressTracker, func(), error) {
	if path == "" {
		return ingest.NewInMemoryProgress(), func() {}, nil
	}
	p, err := ingest.OpenBadgerProgress(path)
	if err != nil {
		return nil, nil, err
	}
	logging.Info().Str("path", path).Msg("Load progress persisted to badger")
	return p, func() {
		if err := p.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing progress store")
		}
	}, nil
}
