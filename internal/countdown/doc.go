// Package countdown derives a live remaining-time display from a single
// server snapshot by fixing a target instant and recomputing once a second.
package countdown
