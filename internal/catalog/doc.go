// Package catalog provides an HTTP client for a read-only catalog API.
//
// # Overview
//
// The remote service exposes a paginated list endpoint plus per-item detail
// endpoints addressable by numeric identifier or by name:
//
//	GET {base}/{collection}?offset=0&limit=20
//	GET {base}/{collection}/{id}
//	GET {base}/{collection}/{name}
//
// The list endpoint returns lightweight references (name + resolvable URL);
// resolving a full Item requires a follow-up fetch. ExtractID recovers the
// numeric identifier from a reference URL ending in "/<digits>/".
//
// # Caching
//
// Every successful response body is cached keyed by the exact request URL.
// Cache hits never touch the network and there is no staleness check, TTL,
// or eviction: the catalog is treated as immutable for the lifetime of the
// client. One Client is constructed at process start and shared by all
// consumers, so the cache is process-wide. Unbounded growth is an accepted
// limitation; a TUI session caps it at the pages the user actually visits.
//
// # Error Handling
//
// The client distinguishes three failure classes:
//
//   - Transport failures (network unreachable, connection reset) are wrapped
//     with fmt.Errorf and carry the underlying error.
//   - HTTP failures (non-2xx) produce *StatusError carrying the status code;
//     IsNotFound recognizes 404s for not-found routing.
//   - Cancellation (a superseded fetch cycle) satisfies IsCanceled; callers
//     discard these silently instead of surfacing them.
//
// All requests take a context.Context; cancelling it aborts the request.
//
// # Thread Safety
//
// Client is safe for concurrent use. The cache is guarded by a mutex and the
// underlying http.Client handles concurrent requests internally.
package catalog
