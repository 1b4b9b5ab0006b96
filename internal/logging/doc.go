// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

// Package logging provides the process-wide zerolog logger for RevenueLens.
//
// Call Init once from main with the loaded configuration; until then a JSON
// logger at info level writes to stderr.
//
//	logging.Init(logging.Config{Level: "debug", Format: "console"})
//	logging.Info().Str("path", csvPath).Msg("Refresh source configured")
//
// Components keep their own child logger:
//
//	log := logging.WithComponent("scheduler")
//	log.Info().Time("next_run", next).Msg("Waiting for refresh window")
//
// Request-scoped and load-scoped identifiers travel in the context and are
// attached by Ctx:
//
//	ctx = logging.ContextWithLoadID(ctx, logging.GenerateLoadID())
//	logging.Ctx(ctx).Info().Int("rows", n).Msg("Flushed batch")
//
// # Configuration
//
// Environment variables (read by internal/config):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
//
// # slog bridge
//
// SlogHandler adapts zerolog to log/slog for libraries that require it, such
// as the sutureslog hook used by the supervisor tree.
package logging
