// Package logtail reads the end of paddock's own log file and decodes its
// JSON lines for the in-app log view.
package logtail
