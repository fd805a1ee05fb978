// Package explorer orchestrates the catalog data pipeline: fetch a page of
// references, resolve full items in parallel, then filter and sort the
// resolved page client-side.
//
// # Fetch Cycles
//
// A cycle runs idle → loading → success, failed, or cancelled. Cycles start
// on page changes and explicit refetches only. Filter and sort changes are
// pure recomputations over the last fetched page; they never touch the
// network. This means filters apply to at most one page of items at a time,
// a deliberate scope limitation inherited from the upstream service's lack
// of server-side filtering.
//
// Each cycle owns a cancellation context derived from the explorer's base
// context. A newer cycle cancels the older one; requests failing with a
// cancellation error are discarded without surfacing anything.
//
// # Failure Policy
//
// Detail fetches within a cycle run concurrently and settle independently.
// A failed detail fetch drops that single item from the page silently. Only
// a failed list fetch becomes a page-level error, and even then the last
// successfully computed items remain visible. There are no automatic
// retries; Refetch is the caller's retry affordance.
//
// # Consumers
//
// The presentation layer polls Snapshot, which returns an independent copy
// of the filtered, sorted page plus loading, error, and pagination state.
package explorer
