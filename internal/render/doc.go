// Package render lays F1 data out as go-pretty text tables. The TUI and the
// CLI print commands share it.
package render
