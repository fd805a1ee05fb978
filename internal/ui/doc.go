// Package ui provides the Bubble Tea terminal interface for Trove.
//
// The interface has two views. The list view shows the current page of
// catalog items with the active filters, sort, and pagination state; the
// detail view shows one item's full record with its note and favorite
// status. A help overlay documents every binding.
//
// The model polls the explorer's Snapshot on a short tick and after each
// user action. All data state lives in the explorer; the UI holds only
// presentation state (selection, input focus, active view, theme).
//
// Search input is debounced: keystrokes flow into a debouncer whose
// settled value becomes the explorer's query filter and the mirrored
// session state. Pressing enter applies the value immediately; pressing
// esc clears it.
package ui
