// Package config handles loading and parsing Trove's configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/trove/config.toml (default)
//  3. If the config file doesn't exist, fall back to built-in defaults
//  4. If the file exists but fields are missing or empty, use defaults
//
// # Fields
//
//   - base_url: catalog API base URL
//   - collection: resource path segment under the base (default "items")
//   - page_size: items fetched per page (default 20)
//   - log_level: debug, info, warn, or error (default info)
//   - data_dir: local storage directory; empty uses the XDG data home
//
// Pointing base_url/collection at any service with a compatible list and
// detail surface works; the client makes no assumptions beyond the JSON
// shapes in the catalog package.
package config
