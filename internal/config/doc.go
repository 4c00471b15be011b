// Package config loads paddock's TOML configuration.
//
// # Configuration Discovery
//
// Load resolves the file in this order:
//
//  1. An explicitly provided path
//  2. ~/.config/paddock/config.toml
//  3. Hardcoded defaults when the file does not exist
//
// Fields that are missing or blank fall back to their defaults.
//
// # Default Values
//
//   - API base: http://localhost:8000/api/f1
//   - Request timeout: 5 seconds (capped at 120)
//   - Log directory: ~/.local/share/paddock
//   - Log file: <log_dir>/paddock.log
//
// # TOML Format
//
//	api_base = "http://localhost:8000/api/f1"
//	request_timeout_seconds = 5
//	log_dir = "~/.local/share/paddock"
//
// Tilde expansion is applied to log_dir. Command-line flags and PADDOCK_*
// environment variables override file values; that layering lives in the cli
// package, this package only reads the file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files, invalid
// TOML and a negative timeout. A missing file is not an error.
package config
