// Package app is the composition root of paddock.
//
// Setup wires the pieces every entry point needs:
//
//  1. Load ~/.config/paddock/config.toml (defaults when missing)
//  2. Apply flag overrides for the API base and log directory
//  3. Load user prefs (theme, last season)
//  4. Build the zap file logger under the log directory
//  5. Build the f1api client with the configured request timeout
//
// Run then starts the dashboard and blocks until the user quits or the
// context is cancelled. The one-shot CLI commands call Setup directly and
// render with internal/render instead.
//
// Configuration errors are fatal. A log directory that cannot be created is
// not: paddock runs with a no-op logger and the log view reports that file
// logging is disabled.
package app
