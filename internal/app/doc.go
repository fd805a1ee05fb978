// Package app wires the pieces of trove together: configuration, local
// storage, the catalog client, the explorer, and the terminal UI. It owns
// process-level concerns such as the log file and session persistence so
// the command layer stays thin.
package app
