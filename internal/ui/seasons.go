package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/five82/paddock/internal/render"
	"github.com/five82/paddock/internal/state"
)

// SeasonTab is a tab of the seasons view.
type SeasonTab int

const (
	TabCalendar SeasonTab = iota
	TabDrivers
	TabConstructors
	TabOverview
)

var seasonTabs = []SeasonTab{TabCalendar, TabDrivers, TabConstructors, TabOverview}

func (t SeasonTab) String() string {
	switch t {
	case TabDrivers:
		return "Drivers"
	case TabConstructors:
		return "Constructors"
	case TabOverview:
		return "Overview"
	default:
		return "Calendar"
	}
}

// Matrix columns: position, name and total take roughly this much room, each
// race column about raceColumnWidth.
const (
	matrixFixedWidth = 40
	raceColumnWidth  = 7
)

// handleSeasonsKey processes keyboard input for the seasons view.
func (m Model) handleSeasonsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Older):
		if year, ok := m.season.Nav().Older(); ok {
			return m.selectSeason(year)
		}
		return m, nil

	case key.Matches(msg, m.keys.Newer):
		if year, ok := m.season.Nav().Newer(); ok {
			return m.selectSeason(year)
		}
		return m, nil

	case key.Matches(msg, m.keys.Picker):
		if nav := m.season.Nav(); len(nav.Years) > 0 {
			m.modal = newSeasonPicker(nav)
		}
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		m.seasonTab = seasonTabs[(int(m.seasonTab)+1)%len(seasonTabs)]
		m.raceOffset = 0
		m.seasonViewport.GotoTop()

	case key.Matches(msg, m.keys.RaceLeft):
		if m.raceOffset == 0 {
			return m, nil
		}
		m.raceOffset--

	case key.Matches(msg, m.keys.RaceRight):
		if m.raceOffset >= m.maxRaceOffset() {
			return m, nil
		}
		m.raceOffset++

	case key.Matches(msg, m.keys.Down):
		m.seasonViewport.ScrollDown(1)
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.seasonViewport.ScrollUp(1)
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.seasonViewport.HalfViewDown()
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.seasonViewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.seasonViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.seasonViewport.GotoBottom()
		return m, nil

	default:
		return m, nil
	}
	m.refreshContent()
	return m, nil
}

type seasonPickedMsg struct {
	year int
}

// selectSeason switches the seasons view to year and refetches the
// per-year slots. The season list and the home view are left alone.
func (m Model) selectSeason(year int) (tea.Model, tea.Cmd) {
	if !m.season.SelectYear(year) {
		return m, nil
	}
	m.raceOffset = 0
	m.savePrefs()
	m.seasonViewport.GotoTop()
	m.refreshContent()
	if m.client == nil {
		return m, nil
	}
	return m, m.seasonYearCmds(year)
}

// raceWindow is the number of race columns that fit the current width.
func (m Model) raceWindow() int {
	return maxInt((m.width-4-matrixFixedWidth)/raceColumnWidth, 1)
}

func (m Model) maxRaceOffset() int {
	var columns int
	switch m.seasonTab {
	case TabDrivers:
		columns = len(render.DriverMatrix(m.season.DriverPoints.Value).Columns)
	case TabConstructors:
		columns = len(render.ConstructorMatrix(m.season.ConstructorPoints.Value).Columns)
	}
	return maxInt(columns-m.raceWindow(), 0)
}

// renderSeasons renders the seasons view: navigation, tab strip and the
// active tab's box.
func (m Model) renderSeasons() string {
	bg := NewBgStyle(m.theme.Background)
	styles := m.theme.Styles().WithBackground(m.theme.Background)

	nav := bg.FillLine(m.renderSeasonNav(styles, bg), m.width)
	tabs := bg.FillLine(m.renderTabStrip(styles, bg), m.width)
	title := fmt.Sprintf("%d %s", m.season.Year, m.seasonTab)
	box := m.renderTitledBox(title, m.seasonViewport.View(), m.width, m.height-4, true)
	return nav + "\n" + tabs + "\n" + box
}

func (m Model) renderSeasonNav(styles Styles, bg BgStyle) string {
	nav := m.season.Nav()
	older, newer := "-", "-"
	if y, ok := nav.Older(); ok {
		older = fmt.Sprint(y)
	}
	if y, ok := nav.Newer(); ok {
		newer = fmt.Sprint(y)
	}
	olderStyle := lo.Ternary(nav.CanOlder(), styles.AccentText, styles.FaintText)
	newerStyle := lo.Ternary(nav.CanNewer(), styles.AccentText, styles.FaintText)

	parts := []string{
		bg.Render("[ "+older, olderStyle),
		bg.Render(fmt.Sprintf("Season %d", m.season.Year), styles.Text.Bold(true)),
		bg.Render(newer+" ]", newerStyle),
	}
	if m.season.List.Err != nil {
		parts = append(parts, bg.Render(m.season.List.Message(state.SlotSeasons), styles.DangerText))
	} else if m.season.List.Pending() {
		parts = append(parts, bg.Render("Loading seasons...", styles.MutedText))
	}
	return bg.Space() + bg.Join(parts, "  ")
}

func (m Model) renderTabStrip(styles Styles, bg BgStyle) string {
	parts := make([]string, 0, len(seasonTabs))
	for _, t := range seasonTabs {
		if t == m.seasonTab {
			parts = append(parts, bg.Render(" "+t.String()+" ", styles.Selected))
			continue
		}
		parts = append(parts, bg.Render(" "+t.String()+" ", styles.MutedText))
	}
	return bg.Space() + bg.Join(parts, " ")
}

// renderSeasonContent renders the active tab's body.
func (m Model) renderSeasonContent() string {
	styles := m.theme.Styles()
	year := m.season.Year

	switch m.seasonTab {
	case TabDrivers:
		slot := m.season.DriverPoints
		switch {
		case slot.Err != nil:
			return styles.DangerText.Render(slot.Message(state.SlotDriverPoints))
		case slot.Pending():
			return styles.MutedText.Render("Loading driver standings...")
		case len(slot.Value) == 0:
			return styles.MutedText.Render(fmt.Sprintf("No driver points for %d.", year))
		}
		return render.MatrixTable(render.DriverMatrix(slot.Value), m.matrixOptions(styles)...)

	case TabConstructors:
		slot := m.season.ConstructorPoints
		switch {
		case slot.Err != nil:
			return styles.DangerText.Render(slot.Message(state.SlotConstructorPoints))
		case slot.Pending():
			return styles.MutedText.Render("Loading constructor standings...")
		case len(slot.Value) == 0:
			return styles.MutedText.Render(fmt.Sprintf("No constructor points for %d.", year))
		}
		return render.MatrixTable(render.ConstructorMatrix(slot.Value), m.matrixOptions(styles)...)

	case TabOverview:
		drivers, constructors := m.season.DriverPoints, m.season.ConstructorPoints
		var errs []string
		if msg := drivers.Message(state.SlotDriverPoints); msg != "" {
			errs = append(errs, styles.DangerText.Render(msg))
		}
		if msg := constructors.Message(state.SlotConstructorPoints); msg != "" {
			errs = append(errs, styles.DangerText.Render(msg))
		}
		if len(errs) > 0 {
			return strings.Join(errs, "\n")
		}
		if drivers.Pending() || constructors.Pending() {
			return styles.MutedText.Render("Loading season overview...")
		}
		return render.SummaryTable(year, state.Summarize(drivers.Value, constructors.Value))

	default:
		slot := m.season.Calendar
		switch {
		case slot.Err != nil:
			return styles.DangerText.Render(slot.Message(state.SlotCalendar))
		case slot.Pending():
			return styles.MutedText.Render("Loading race calendar...")
		case len(slot.Value) == 0:
			return styles.MutedText.Render(fmt.Sprintf("No races scheduled for %d.", year))
		}
		return render.CalendarTable(slot.Value)
	}
}

func (m Model) matrixOptions(styles Styles) []render.Option {
	return []render.Option{
		render.WithPainter(styles.Painter()),
		render.WithRaceWindow(m.raceOffset, m.raceWindow()),
	}
}
