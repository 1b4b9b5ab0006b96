// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

/*
Package services provides suture.Service wrappers for RevenueLens components.

Each wrapper translates a component's own lifecycle into suture's
Serve(ctx) error and implements fmt.Stringer so supervisor events name it.

# Available Services

HTTP Server (HTTPServerService):
  - Runs ListenAndServe in a goroutine
  - Drains connections with Shutdown when the context is canceled
  - Returns listen failures so the api layer restarts it

Refresh Scheduler (RefreshSchedulerService):
  - Calls Start, waits for cancellation, calls Stop
  - Stop cancels an in-flight load, which commits its processed prefix

# Error Semantics

Returning ctx.Err() after cancellation is a normal stop. Any other error
counts toward the layer's failure threshold and triggers a restart.
*/
package services
