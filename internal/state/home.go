package state

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"github.com/five82/paddock/internal/f1api"
)

// Slot names, as used in user-facing error text and log fields.
const (
	SlotDriverStandings      = "driver standings"
	SlotConstructorStandings = "constructor standings"
	SlotNextEvent            = "next race"
	SlotTeamDrivers          = "drivers"
	SlotDriverStats          = "driver stats"
	SlotConstructorStats     = "constructor stats"
	SlotCountdown            = "next race countdown"
)

// Home aggregates the data behind the home view. Each slot is filled by its
// own fetch.
type Home struct {
	DriverStandings      Slot[[]f1api.DriverStanding]
	ConstructorStandings Slot[[]f1api.ConstructorStanding]
	NextEvent            Slot[f1api.Race]
	TeamDrivers          Slot[[]f1api.TeamDrivers]
	DriverStats          Slot[[]f1api.DriverStats]
	ConstructorStats     Slot[[]f1api.ConstructorStats]
	Countdown            Slot[f1api.Countdown]
}

// Errors lists the failure message of every failed slot in display order.
func (h Home) Errors() []string {
	msgs := []string{
		h.DriverStandings.Message(SlotDriverStandings),
		h.ConstructorStandings.Message(SlotConstructorStandings),
		h.NextEvent.Message(SlotNextEvent),
		h.TeamDrivers.Message(SlotTeamDrivers),
		h.DriverStats.Message(SlotDriverStats),
		h.ConstructorStats.Message(SlotConstructorStats),
		h.Countdown.Message(SlotCountdown),
	}
	return lo.Compact(msgs)
}

// TopDrivers returns the first n driver standings ordered by position.
func TopDrivers(rows []f1api.DriverStanding, n int) []f1api.DriverStanding {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b f1api.DriverStanding) int { return cmp.Compare(a.Position, b.Position) })
	return sorted[:min(n, len(sorted))]
}

// TopConstructors returns the first n constructor standings ordered by position.
func TopConstructors(rows []f1api.ConstructorStanding, n int) []f1api.ConstructorStanding {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b f1api.ConstructorStanding) int { return cmp.Compare(a.Position, b.Position) })
	return sorted[:min(n, len(sorted))]
}

// DriverStatsFor finds the stats record of a driver.
func DriverStatsFor(stats []f1api.DriverStats, id f1api.ID) (f1api.DriverStats, bool) {
	return lo.Find(stats, func(s f1api.DriverStats) bool { return s.ID == id })
}

// ConstructorStatsFor finds the stats record of a constructor.
func ConstructorStatsFor(stats []f1api.ConstructorStats, id f1api.ID) (f1api.ConstructorStats, bool) {
	return lo.Find(stats, func(s f1api.ConstructorStats) bool { return s.ID == id })
}

// TeamLineup describes a constructor's drivers for the standings row.
func TeamLineup(slot Slot[[]f1api.TeamDrivers], c f1api.ConstructorStanding) string {
	switch {
	case slot.Err != nil:
		return "Error loading drivers"
	case !slot.Loaded:
		return "Loading drivers..."
	}
	team, _ := lo.Find(slot.Value, func(t f1api.TeamDrivers) bool { return t.ID == c.ID })
	drivers := lo.Compact(team.Drivers)
	switch len(drivers) {
	case 0:
		return "No drivers found for " + c.Name
	case 1:
		return drivers[0] + " | Driver 2 TBD"
	default:
		return drivers[0] + " | " + drivers[1]
	}
}
