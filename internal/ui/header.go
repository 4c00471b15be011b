package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/five82/paddock/internal/f1api"
	"github.com/five82/paddock/internal/state"
)

// renderHeader renders the status bar: logo, view, last error and update time.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{
		bg.Render("paddock", styles.Logo),
		bg.Render(strings.ToUpper(m.currentView.String()), styles.AccentText.Bold(true)),
	}

	if m.currentView == ViewSeasons {
		parts = append(parts, bg.Render(fmt.Sprintf("Season %d", m.season.Year), styles.Text))
	}

	if m.currentView == ViewHome && m.counting {
		parts = append(parts,
			bg.Render("Next:", styles.MutedText)+bg.Space()+
				bg.Render(m.remaining.String(), styles.InfoText))
	}

	if ts := m.formatTimestamp(); ts != "" {
		parts = append(parts, bg.Render(ts, styles.MutedText))
	}

	if m.lastErr != nil {
		maxErr := 80
		if compact {
			maxErr = 40
		}
		errText := truncate(state.FailureMessage(m.lastErrSlot, m.lastErr), maxErr)
		parts = append(parts,
			bg.Render(classifyError(m.lastErr), styles.DangerText.Bold(true))+bg.Space()+
				bg.Render(errText, styles.DangerText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// formatTimestamp formats the last update time with relative indicator.
func (m Model) formatTimestamp() string {
	if m.lastUpdated.IsZero() {
		return ""
	}

	timeSince := m.now().Sub(m.lastUpdated)
	timeStr := m.lastUpdated.Local().Format("15:04:05")

	switch {
	case timeSince < time.Minute:
		timeStr += " (now)"
	case timeSince < time.Hour:
		timeStr += fmt.Sprintf(" (%dm ago)", int(timeSince.Minutes()))
	case timeSince < 24*time.Hour:
		timeStr += fmt.Sprintf(" (%dh ago)", int(timeSince.Hours()))
	}

	return timeStr
}

// classifyError returns a short label for a fetch error.
func classifyError(err error) string {
	if err == nil {
		return ""
	}
	if code := f1api.StatusCode(err); code != 0 {
		return fmt.Sprintf("HTTP %d", code)
	}
	if errors.Is(err, f1api.ErrShape) {
		return "BAD DATA"
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewSeasons:
		commands = []cmd{
			{"[/]", "Older/Newer"},
			{"p", "Pick"},
			{"t", m.seasonTab.String()},
			{"←/→", "Races"},
			{"r", "Refresh"},
			{"1", "Home"},
			{"l", "Logs"},
			{"?", "More"},
		}
	case ViewLogs:
		commands = []cmd{
			{"Space", ternary(m.logState.follow, "Pause", "Follow")},
			{"j/k", "Scroll"},
			{"r", "Reload"},
			{"1", "Home"},
			{"s", "Seasons"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Stats"},
			{"r", "Refresh"},
			{"s", "Seasons"},
			{"l", "Logs"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}
