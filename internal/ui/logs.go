package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/five82/paddock/internal/logtail"
)

// logState holds the log view's buffer and scroll mode.
type logState struct {
	follow   bool
	entries  []logtail.Entry
	err      error
	lastRead time.Time
}

type logLinesMsg struct {
	entries []logtail.Entry
	err     error
	at      time.Time
}

// refreshLogs reads the tail of paddock's own log file.
func (m Model) refreshLogs() tea.Cmd {
	path := m.logPath
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogBufferLimit)
		entries := lo.Map(lines, func(line string, _ int) logtail.Entry { return logtail.Parse(line) })
		return logLinesMsg{entries: entries, err: err, at: time.Now()}
	}
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	m.logState.err = msg.err
	m.logState.lastRead = msg.at
	if msg.err == nil {
		m.logState.entries = msg.entries
	}
	m.updateLogViewport()
}

// handleLogsKey processes keyboard input for the log view.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleTail):
		m.logState.follow = !m.logState.follow
		if m.logState.follow {
			m.logViewport.GotoBottom()
			return m, m.refreshLogs()
		}
	case key.Matches(msg, m.keys.Down):
		m.logViewport.ScrollDown(1)
		m.logState.follow = false
	case key.Matches(msg, m.keys.Up):
		m.logViewport.ScrollUp(1)
		m.logState.follow = false
	case key.Matches(msg, m.keys.PageDown):
		m.logViewport.HalfViewDown()
		m.logState.follow = false
	case key.Matches(msg, m.keys.PageUp):
		m.logViewport.HalfViewUp()
		m.logState.follow = false
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		m.logState.follow = false
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		m.logState.follow = true
	}
	return m, nil
}

// updateLogViewport updates the log viewport with current content.
func (m *Model) updateLogViewport() {
	if !m.ready {
		return
	}
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.logViewport.SetContent(m.renderLogContent())
	if m.logState.follow {
		m.logViewport.GotoBottom()
	}
}

func (m Model) renderLogContent() string {
	styles := m.theme.Styles()
	switch {
	case m.logPath == "":
		return styles.MutedText.Render("File logging is disabled.")
	case m.logState.err != nil:
		return styles.DangerText.Render(fmt.Sprintf("Failed to read %s: %v", m.logPath, m.logState.err))
	case len(m.logState.entries) == 0:
		return styles.MutedText.Render("No log entries yet.")
	}

	lines := make([]string, 0, len(m.logState.entries))
	for _, e := range m.logState.entries {
		lines = append(lines, m.levelStyle(styles, e.Level).Render(e.String()))
	}
	return strings.Join(lines, "\n")
}

func (m Model) levelStyle(styles Styles, level string) lipgloss.Style {
	switch level {
	case "ERROR", "DPANIC", "PANIC", "FATAL":
		return styles.DangerText
	case "WARN":
		return styles.WarningText
	case "DEBUG":
		return styles.FaintText
	default:
		return styles.Text
	}
}

// renderLogs renders the log view.
func (m Model) renderLogs() string {
	bg := NewBgStyle(m.theme.Surface)
	styles := m.theme.Styles().WithBackground(m.theme.Surface)

	box := m.renderTitledBox("paddock.log", m.logViewport.View(), m.width, m.height-3, true)
	return box + "\n" + m.renderLogStatus(styles, bg)
}

// renderLogStatus renders the line below the log box.
func (m Model) renderLogStatus(styles Styles, bg BgStyle) string {
	mode := lo.Ternary(m.logState.follow, "FOLLOW", "PAUSED")
	modeStyle := lo.Ternary(m.logState.follow, styles.SuccessText, styles.WarningText)

	parts := []string{
		bg.Render(mode, modeStyle),
		bg.Render(fmt.Sprintf("%d lines", len(m.logState.entries)), styles.MutedText),
	}
	if m.logPath != "" {
		parts = append(parts, bg.Render(truncateMiddle(m.logPath, maxInt(m.width/2, 10)), styles.FaintText))
	}
	return bg.FillLine(bg.Space()+bg.Join(parts, "  "), m.width)
}
