package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/paddock/internal/countdown"
	"github.com/five82/paddock/internal/f1api"
)

type countdownMsg struct {
	gen       int
	remaining countdown.Breakdown
}

type countdownDoneMsg struct {
	gen int
}

// startCountdown replaces any running subscription with one towards
// now + c and returns the command that reads its first update.
func (m *Model) startCountdown(c f1api.Countdown) tea.Cmd {
	m.stopCountdown()
	m.countdownGen++
	m.sub = countdown.Start(m.ctx, c.Duration(), m.countdownOpts...)
	m.remaining = countdown.FromParts(c.Days, c.Hours, c.Minutes, c.Seconds)
	return waitCountdown(m.sub, m.countdownGen)
}

// stopCountdown ends the running subscription, if any, and hides the
// countdown until a new one delivers.
func (m *Model) stopCountdown() {
	if m.sub != nil {
		m.sub.Stop()
		m.sub = nil
	}
	m.countdownGen++
	m.counting = false
}

// waitCountdown blocks for the next update of sub.
func waitCountdown(sub *countdown.Subscription, gen int) tea.Cmd {
	return func() tea.Msg {
		b, ok := <-sub.Updates()
		if !ok {
			return countdownDoneMsg{gen: gen}
		}
		return countdownMsg{gen: gen, remaining: b}
	}
}
