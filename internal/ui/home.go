package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/five82/paddock/internal/calendar"
	"github.com/five82/paddock/internal/f1api"
	"github.com/five82/paddock/internal/state"
)

// homeTopN is how many standings rows the home view lists per table.
const homeTopN = 3

func (m Model) homeRows() ([]f1api.DriverStanding, []f1api.ConstructorStanding) {
	return state.TopDrivers(m.home.DriverStandings.Value, homeTopN),
		state.TopConstructors(m.home.ConstructorStandings.Value, homeTopN)
}

// handleHomeKey moves the row cursor and toggles stats rows.
func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	drivers, constructors := m.homeRows()
	rows := len(drivers) + len(constructors)

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.homeCursor < rows-1 {
			m.homeCursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.homeCursor > 0 {
			m.homeCursor--
		}
	case key.Matches(msg, m.keys.Top):
		m.homeCursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.homeCursor = maxInt(rows-1, 0)
	case key.Matches(msg, m.keys.Expand):
		m.toggleExpanded(drivers, constructors)
	case key.Matches(msg, m.keys.PageDown):
		m.homeViewport.HalfViewDown()
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.homeViewport.HalfViewUp()
		return m, nil
	default:
		return m, nil
	}
	m.refreshContent()
	return m, nil
}

// toggleExpanded flips the stats row under the cursor. Each table keeps at
// most one expanded row, keyed by standings position.
func (m *Model) toggleExpanded(drivers []f1api.DriverStanding, constructors []f1api.ConstructorStanding) {
	if m.homeCursor < len(drivers) {
		pos := drivers[m.homeCursor].Position
		m.expandedDriver = lo.Ternary(m.expandedDriver == pos, 0, pos)
		return
	}
	if i := m.homeCursor - len(drivers); i < len(constructors) {
		pos := constructors[i].Position
		m.expandedConstructor = lo.Ternary(m.expandedConstructor == pos, 0, pos)
	}
}

// renderHome renders the home view.
func (m Model) renderHome() string {
	return m.renderTitledBox("Home", m.homeViewport.View(), m.width, m.height-2, true)
}

// renderHomeContent builds the scrollable home view body.
func (m Model) renderHomeContent() string {
	styles := m.theme.Styles()
	drivers, constructors := m.homeRows()

	var b strings.Builder
	m.writeNextRace(&b, styles)
	b.WriteString("\n")
	m.writeDriverStandings(&b, styles, drivers)
	b.WriteString("\n")
	m.writeConstructorStandings(&b, styles, constructors, len(drivers))
	return b.String()
}

func sectionTitle(styles Styles, title string) string {
	return styles.AccentText.Bold(true).Render(title) + "\n"
}

func (m Model) writeNextRace(b *strings.Builder, styles Styles) {
	b.WriteString(sectionTitle(styles, "Next Race"))

	slot := m.home.NextEvent
	switch {
	case slot.Err != nil:
		b.WriteString(styles.DangerText.Render(slot.Message(state.SlotNextEvent)) + "\n")
	case slot.Pending():
		b.WriteString(styles.MutedText.Render("Loading next race...") + "\n")
	default:
		race := slot.Value
		country := race.Country
		if code := strings.TrimSpace(race.CountryCode); code != "" {
			country = "[" + strings.ToUpper(code) + "] " + country
		}
		b.WriteString(styles.MutedText.Render(country) + "\n")

		title := race.EventName
		if race.Location != "" {
			title += " @ " + race.Location
		}
		b.WriteString(styles.Text.Bold(true).Render(title) + "\n")
		b.WriteString(styles.Text.Render("Race: "+raceStart(race)) + "\n")

		weekend := styles.MutedText
		if race.IsSprintWeekend() {
			weekend = styles.WarningText
		}
		b.WriteString(weekend.Render(race.WeekendLabel()) + "\n")
	}

	switch {
	case m.home.Countdown.Err != nil:
		b.WriteString(styles.DangerText.Render(m.home.Countdown.Message(state.SlotCountdown)) + "\n")
	case m.home.Countdown.Ready() && m.counting:
		b.WriteString("\n" + m.renderCountdown(styles) + "\n")
	}
}

// raceStart formats the start of the race session in local time.
func raceStart(race f1api.Race) string {
	s, ok := race.RaceSession()
	if !ok {
		return "TBC"
	}
	start, err := calendar.SessionStart(s)
	if err != nil {
		return strings.TrimSpace(s.Date + " " + s.Time)
	}
	return start.Local().Format("Mon 2 Jan 2006, 15:04 MST")
}

// renderCountdown lays the remaining time out as four labelled columns.
func (m Model) renderCountdown(styles Styles) string {
	cols := []struct {
		label string
		value int
	}{
		{"DAYS", m.remaining.Days},
		{"HOURS", m.remaining.Hours},
		{"MINUTES", m.remaining.Minutes},
		{"SECONDS", m.remaining.Seconds},
	}
	cell := lipgloss.NewStyle().Width(10).Align(lipgloss.Center)
	blocks := make([]string, 0, len(cols))
	for _, c := range cols {
		blocks = append(blocks, cell.Render(lipgloss.JoinVertical(lipgloss.Center,
			styles.Text.Bold(true).Render(fmt.Sprintf("%02d", c.value)),
			styles.FaintText.Render(c.label),
		)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

func (m Model) writeDriverStandings(b *strings.Builder, styles Styles, drivers []f1api.DriverStanding) {
	b.WriteString(sectionTitle(styles, "Driver Standings"))
	slot := m.home.DriverStandings
	if msg, done := standingsPlaceholder(styles, slot.Err != nil, slot.Pending(), len(drivers) == 0,
		slot.Message(state.SlotDriverStandings), "Loading driver standings..."); done {
		b.WriteString(msg)
		return
	}

	for i, d := range drivers {
		name := d.Name
		if d.Driver != "" {
			name += " (" + d.Driver + ")"
		}
		line := fmt.Sprintf("%2d  %s %s %s %s pts",
			d.Position,
			padRight(truncate(name, 28), 28),
			padRight(d.Nationality, 4),
			padRight(truncate(d.Constructor, 18), 18),
			f1api.FormatPoints(d.Points))
		b.WriteString(m.cursorLine(styles, i, line) + "\n")

		if m.expandedDriver != 0 && m.expandedDriver == d.Position {
			b.WriteString("      " + m.driverStatsLine(styles, d) + "\n")
		}
	}
}

func (m Model) writeConstructorStandings(b *strings.Builder, styles Styles, constructors []f1api.ConstructorStanding, offset int) {
	b.WriteString(sectionTitle(styles, "Constructor Standings"))
	slot := m.home.ConstructorStandings
	if msg, done := standingsPlaceholder(styles, slot.Err != nil, slot.Pending(), len(constructors) == 0,
		slot.Message(state.SlotConstructorStandings), "Loading constructor standings..."); done {
		b.WriteString(msg)
		return
	}

	for i, c := range constructors {
		line := fmt.Sprintf("%2d  %s %s %s pts",
			c.Position,
			padRight(truncate(c.Name, 28), 28),
			padRight(c.Nationality, 4),
			f1api.FormatPoints(c.Points))
		b.WriteString(m.cursorLine(styles, offset+i, line) + "\n")

		lineupStyle := styles.MutedText
		if m.home.TeamDrivers.Err != nil {
			lineupStyle = styles.DangerText
		}
		b.WriteString("      " + lineupStyle.Render(state.TeamLineup(m.home.TeamDrivers, c)) + "\n")

		if m.expandedConstructor != 0 && m.expandedConstructor == c.Position {
			b.WriteString("      " + m.constructorStatsLine(styles, c) + "\n")
		}
	}
}

// standingsPlaceholder returns the text shown instead of standings rows, if
// any.
func standingsPlaceholder(styles Styles, failed, pending, empty bool, failure, loading string) (string, bool) {
	switch {
	case failed:
		return styles.DangerText.Render(failure) + "\n", true
	case pending:
		return styles.MutedText.Render(loading) + "\n", true
	case empty:
		return styles.MutedText.Render("No standings available.") + "\n", true
	}
	return "", false
}

func (m Model) cursorLine(styles Styles, row int, line string) string {
	if m.currentView == ViewHome && row == m.homeCursor {
		return styles.Selected.Render("▸ " + line)
	}
	return styles.Text.Render("  " + line)
}

func (m Model) driverStatsLine(styles Styles, d f1api.DriverStanding) string {
	slot := m.home.DriverStats
	switch {
	case slot.Err != nil:
		return styles.DangerText.Render(slot.Message(state.SlotDriverStats))
	case slot.Pending():
		return styles.MutedText.Render("Loading stats...")
	}
	s, ok := state.DriverStatsFor(slot.Value, d.ID)
	if !ok {
		return styles.MutedText.Render("No stats available.")
	}
	return styles.InfoText.Render(fmt.Sprintf("Poles %d · Podiums %d · Wins %d · DNFs %d", s.Poles, s.Podiums, s.Wins, s.DNF))
}

func (m Model) constructorStatsLine(styles Styles, c f1api.ConstructorStanding) string {
	slot := m.home.ConstructorStats
	switch {
	case slot.Err != nil:
		return styles.DangerText.Render(slot.Message(state.SlotConstructorStats))
	case slot.Pending():
		return styles.MutedText.Render("Loading stats...")
	}
	s, ok := state.ConstructorStatsFor(slot.Value, c.ID)
	if !ok {
		return styles.MutedText.Render("No stats available.")
	}
	return styles.InfoText.Render(fmt.Sprintf("Poles %d · Podiums %d · Wins %d", s.Poles, s.Podiums, s.Wins))
}
