package state

import (
	"time"

	"github.com/samber/lo"

	"github.com/five82/paddock/internal/f1api"
)

// Slot names of the seasons view.
const (
	SlotSeasons           = "seasons"
	SlotCalendar          = "race calendar"
	SlotDriverPoints      = "driver points"
	SlotConstructorPoints = "constructor points"
)

// Season aggregates the data behind the seasons view. List is fetched once;
// the other slots belong to Year and are refetched when it changes.
type Season struct {
	Year              int
	List              Slot[[]f1api.Season]
	Calendar          Slot[[]f1api.Race]
	DriverPoints      Slot[[]f1api.DriverPoints]
	ConstructorPoints Slot[[]f1api.ConstructorPoints]
}

// SelectYear switches to year and resets the per-year slots. It reports
// whether anything changed.
func (s *Season) SelectYear(year int) bool {
	if year == s.Year {
		return false
	}
	s.Year = year
	s.Calendar.Reset()
	s.DriverPoints.Reset()
	s.ConstructorPoints.Reset()
	return true
}

// Errors lists the failure message of every failed slot in display order.
func (s Season) Errors() []string {
	return lo.Compact([]string{
		s.List.Message(SlotSeasons),
		s.Calendar.Message(SlotCalendar),
		s.DriverPoints.Message(SlotDriverPoints),
		s.ConstructorPoints.Message(SlotConstructorPoints),
	})
}

// Nav returns the navigation state for the current list and year.
func (s Season) Nav() SeasonNav {
	return NewSeasonNav(s.List.Value, s.Year)
}

// DefaultSeason picks the initially selected year: the remembered one when
// set, otherwise the current calendar year.
func DefaultSeason(remembered int, now time.Time) int {
	if remembered > 0 {
		return remembered
	}
	return now.Year()
}

// SeasonNav steps through the season list in the order the API returns it,
// newest first. Older moves to index+1, Newer to index-1.
type SeasonNav struct {
	Years    []int
	Selected int
}

// NewSeasonNav builds a navigator over seasons.
func NewSeasonNav(seasons []f1api.Season, selected int) SeasonNav {
	return SeasonNav{
		Years:    lo.Map(seasons, func(s f1api.Season, _ int) int { return s.Year }),
		Selected: selected,
	}
}

// Index is the position of the selected year, or -1.
func (n SeasonNav) Index() int {
	return lo.IndexOf(n.Years, n.Selected)
}

// CanOlder reports whether Older would move.
func (n SeasonNav) CanOlder() bool {
	return n.Selected != 0 && n.Index() < len(n.Years)-1
}

// CanNewer reports whether Newer would move.
func (n SeasonNav) CanNewer() bool {
	return n.Selected != 0 && n.Index() > 0
}

// Older returns the year after the selected one in list order.
func (n SeasonNav) Older() (int, bool) {
	if !n.CanOlder() {
		return n.Selected, false
	}
	return n.Years[n.Index()+1], true
}

// Newer returns the year before the selected one in list order.
func (n SeasonNav) Newer() (int, bool) {
	if !n.CanNewer() {
		return n.Selected, false
	}
	return n.Years[n.Index()-1], true
}

// Select accepts year only when it is in the list.
func (n SeasonNav) Select(year int) (int, bool) {
	if !lo.Contains(n.Years, year) {
		return n.Selected, false
	}
	return year, true
}
