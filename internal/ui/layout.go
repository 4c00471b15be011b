package ui

import "time"

// LayoutCompactWidth is the terminal width below which the header shortens
// error text.
const LayoutCompactWidth = 100

// LogBufferLimit is the maximum number of log lines kept in memory.
const LogBufferLimit = 2000

// DefaultUIInterval is the default UI refresh interval.
const DefaultUIInterval = 2 * time.Second
