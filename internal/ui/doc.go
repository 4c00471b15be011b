// Package ui provides the paddock terminal dashboard.
//
// The UI is a single Bubble Tea model with three views:
//
//   - Home: next race card with a live countdown, and the top of the driver
//     and constructor standings. Rows expand to show season stats.
//   - Seasons: calendar, per-race points matrices and a season overview for
//     the selected year, with older/newer navigation and a season picker.
//   - Logs: the tail of paddock's own log file.
//
// Every piece of data lives in its own state.Slot and is fetched by its own
// tea.Cmd, so one failed endpoint never blanks the rest of a view. Failures
// are shown in place as "Failed to load <thing>: <err>" and the most recent
// one is repeated in the header.
//
// The countdown is driven by a countdown.Subscription. Each subscription has
// a generation number; refreshing the home view stops the running one before
// the new snapshot starts the next, and updates from stopped generations are
// ignored. Quitting stops it as well.
//
// Keys follow a common scheme: tab cycles views, 1/2/3 jump to a view, r
// refreshes the current view, T cycles the theme (saved to prefs), h or ?
// opens help, and e or ctrl+c quits.
package ui
