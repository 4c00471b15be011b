package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/paddock/internal/state"
)

// pickerRows is the number of years visible at once.
const pickerRows = 12

// seasonPicker lists every known season and picks one.
type seasonPicker struct {
	years  []int
	cursor int
}

func newSeasonPicker(nav state.SeasonNav) seasonPicker {
	return seasonPicker{years: nav.Years, cursor: maxInt(nav.Index(), 0)}
}

// Update implements Modal.
func (p seasonPicker) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil, false
	}
	switch {
	case key.Matches(km, keys.Escape), key.Matches(km, keys.Picker):
		return p, nil, true
	case key.Matches(km, keys.Down):
		if p.cursor < len(p.years)-1 {
			p.cursor++
		}
	case key.Matches(km, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(km, keys.Top):
		p.cursor = 0
	case key.Matches(km, keys.Bottom):
		p.cursor = maxInt(len(p.years)-1, 0)
	case key.Matches(km, keys.Confirm):
		if len(p.years) == 0 {
			return p, nil, true
		}
		year := p.years[p.cursor]
		return p, func() tea.Msg { return seasonPickedMsg{year: year} }, true
	}
	return p, nil, false
}

// View implements Modal.
func (p seasonPicker) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Select Season"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 16)))
	b.WriteString("\n")

	start := 0
	if p.cursor >= pickerRows {
		start = p.cursor - pickerRows + 1
	}
	end := min(start+pickerRows, len(p.years))
	for i := start; i < end; i++ {
		line := fmt.Sprintf(" %d ", p.years[i])
		if i == p.cursor {
			b.WriteString(styles.Selected.Render(padRight(line, 14)))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(22)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
