// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

/*
Package supervisor provides process supervision for RevenueLens using suture v4.

The tree restarts crashed services with backoff and shuts everything down in
order when the root context is canceled.

# Overview

	RootSupervisor ("revenuelens")
	├── IngestSupervisor ("ingest-layer")
	│   └── RefreshSchedulerService (if REFRESH_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A failing scheduler enters backoff inside its own layer; the HTTP server keeps
answering revenue queries from whatever data was last committed.

# Usage Example

	logger := logging.NewSlogLogger()
	tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}

	tree.AddIngestService(services.NewRefreshSchedulerService(sched))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Timeout))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped with error")
	}

# Events

Supervisor events (service start, failure, backoff, restart) are emitted
through sutureslog into the slog adapter of internal/logging, so they land
in the same zerolog stream as the rest of the application.

# See Also

  - internal/supervisor/services: suture.Service wrappers
  - github.com/thejerf/suture/v4
*/
package supervisor
