// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

/*
Package cache provides a thread-safe in-memory TTL cache for revenue query
results.

Entries expire lazily on Get and in a background sweep every five minutes.
Clear drops everything and bumps a generation counter, which lets a reader
discard a result computed before an invalidation:

	gen := c.Generation()
	v, err := compute()
	if err == nil {
	    c.SetIfGeneration(key, v, gen)
	}

The revenue views clear their cache whenever a load completes, so a cached
view always reflects the last completed load and is never older than the
TTL.

Keys come from GenerateKey, which hashes the JSON encoding of the query
parameters:

	key := cache.GenerateKey("by_region", params)
*/
package cache
