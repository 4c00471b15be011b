// Package state holds the per-view data of paddock.
//
// Every piece of view data lives in its own Slot with an independent value
// and error, so one failed fetch never disturbs the others. Home and Season
// group the slots of the two data views. SeasonNav steps through the season
// list, and Summarize condenses a season's points matrices into the overview.
//
// LoadHome and LoadSeason fill an aggregate with one goroutine per slot and
// wait for all of them; the CLI print commands use them. The TUI fills the
// same aggregates from independent tea.Cmd results instead.
package state
