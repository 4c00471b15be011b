package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Refresh    key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding

	// View switching
	ViewHome    key.Binding
	ViewSeasons key.Binding
	ViewLogs    key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Home
	Expand key.Binding

	// Seasons
	Older      key.Binding
	Newer      key.Binding
	Picker     key.Binding
	NextTab    key.Binding
	RaceLeft   key.Binding
	RaceRight  key.Binding
	Confirm    key.Binding
	ToggleTail key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh view"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Cycle views"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Cycle views (reverse)"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Return home"),
		),

		ViewHome: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Home"),
		),
		ViewSeasons: key.NewBinding(
			key.WithKeys("2", "s"),
			key.WithHelp("2/s", "Seasons"),
		),
		ViewLogs: key.NewBinding(
			key.WithKeys("3", "l"),
			key.WithHelp("3/l", "Logs"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("ctrl+u", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("ctrl+d", "Page down"),
		),

		Expand: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "Expand stats"),
		),

		Older: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Older season"),
		),
		Newer: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Newer season"),
		),
		Picker: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Pick season"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Next tab"),
		),
		RaceLeft: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "Earlier races"),
		),
		RaceRight: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "Later races"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		ToggleTail: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Toggle follow mode"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings grouped the way the help overlay shows them.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ViewHome, k.ViewSeasons, k.ViewLogs, k.Escape, k.Up, k.Down, k.Top, k.Bottom},
		{k.Expand},
		{k.Older, k.Newer, k.Picker, k.NextTab, k.RaceLeft, k.RaceRight},
		{k.ToggleTail},
		{k.Refresh, k.CycleTheme, k.Help, k.Quit},
	}
}
