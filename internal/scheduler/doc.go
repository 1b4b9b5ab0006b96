// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

// Package scheduler runs the nightly incremental refresh of the sales feed.
//
// The scheduler cycles Idle → WaitingForNextWindow → Running. The wait
// target is NextWindow(now, hour): today at hour:00 if that is still ahead,
// otherwise tomorrow. A successful load goes straight back to waiting; a
// failed load is logged, followed by a cooldown (default 5m), after which the
// next window is recomputed. Context cancellation or Stop ends the loop at
// any suspension point without error.
//
// Time is read through the Clock interface so tests can drive the loop
// deterministically.
package scheduler
