// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package database

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/revenuelens/internal/logging"
)

// ErrAggregateUnsupported is returned by the revenue aggregate queries when the
// store cannot compute an exact SUM over the revenue expression. Callers fall
// back to OrderFigures and reduce in memory.
var ErrAggregateUnsupported = errors.New("store cannot aggregate revenue expression")

// classifyAggregateError maps backend failures that mean "this aggregate
// cannot be evaluated here" onto ErrAggregateUnsupported. DuckDB reports
// decimal overflow and unsupported decimal casts as typed errors.
func classifyAggregateError(err error) error {
	if err == nil {
		return nil
	}
	var dErr *duckdb.Error
	if errors.As(err, &dErr) {
		switch dErr.Type {
		case duckdb.ErrorTypeOutOfRange, duckdb.ErrorTypeConversion, duckdb.ErrorTypeDecimal:
			return fmt.Errorf("%w: %w", ErrAggregateUnsupported, err)
		}
	}
	return err
}

// closeWithLog closes a resource and logs any error
// Use this for cleanup operations where errors should be acknowledged but not fail the operation
func closeWithLog(closer io.Closer, logger *slog.Logger, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		if logger != nil {
			logger.Error("failed to close resource",
				"type", resourceType,
				"error", err)
		} else {
			logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
		}
	}
}

// closeQuietly closes a resource and explicitly ignores any error
// Use this for cleanup operations in error paths where Close() errors are not actionable
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
