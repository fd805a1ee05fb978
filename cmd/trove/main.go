// Package main provides the entry point for the trove CLI.
//
// Trove is a terminal explorer for item catalogs served over REST.
// It browses, searches, and filters the catalog interactively and keeps
// favorites and notes on the local machine.
//
// Usage:
//
//	trove browse
//	trove item <id|name>
//	trove favorites
//
// See --help for all available options.
package main

// main is the entry point for trove.
func main() {
	Execute()
}
