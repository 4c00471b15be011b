package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/paddock/internal/f1api"
	"github.com/five82/paddock/internal/state"
)

// slotMsg carries the result of one fetch. year is set for per-season slots
// so results for a season that is no longer selected can be dropped.
type slotMsg[T any] struct {
	slot  string
	year  int
	value T
	err   error
	at    time.Time
}

func fetchCmd[T any](ctx context.Context, logger *zap.Logger, slot string, year int, fetch func(context.Context) (T, error)) tea.Cmd {
	return func() tea.Msg {
		v, err := fetch(ctx)
		if err != nil {
			fields := []zap.Field{zap.String("slot", slot), zap.Error(err)}
			if year != 0 {
				fields = append(fields, zap.Int("year", year))
			}
			logger.Warn("fetch failed", fields...)
		}
		return slotMsg[T]{slot: slot, year: year, value: v, err: err, at: time.Now()}
	}
}

// homeCmds fetches every home slot independently.
func (m Model) homeCmds() tea.Cmd {
	c := m.client
	return tea.Batch(
		fetchCmd(m.ctx, m.logger, state.SlotDriverStandings, 0, c.FetchDriverStandings),
		fetchCmd(m.ctx, m.logger, state.SlotConstructorStandings, 0, c.FetchConstructorStandings),
		fetchCmd(m.ctx, m.logger, state.SlotNextEvent, 0, c.FetchNextEvent),
		fetchCmd(m.ctx, m.logger, state.SlotTeamDrivers, 0, c.FetchTeamDrivers),
		fetchCmd(m.ctx, m.logger, state.SlotDriverStats, 0, c.FetchDriverStats),
		fetchCmd(m.ctx, m.logger, state.SlotConstructorStats, 0, c.FetchConstructorStats),
		fetchCmd(m.ctx, m.logger, state.SlotCountdown, 0, c.FetchNextEventCountdown),
	)
}

func (m Model) seasonListCmd() tea.Cmd {
	return fetchCmd(m.ctx, m.logger, state.SlotSeasons, 0, m.client.FetchSeasons)
}

// seasonYearCmds fetches the slots that depend on the selected year.
func (m Model) seasonYearCmds(year int) tea.Cmd {
	c := m.client
	return tea.Batch(
		fetchCmd(m.ctx, m.logger, state.SlotCalendar, year, func(ctx context.Context) ([]f1api.Race, error) {
			return c.FetchRaceCalendar(ctx, year)
		}),
		fetchCmd(m.ctx, m.logger, state.SlotDriverPoints, year, func(ctx context.Context) ([]f1api.DriverPoints, error) {
			return c.FetchDriverPoints(ctx, year)
		}),
		fetchCmd(m.ctx, m.logger, state.SlotConstructorPoints, year, func(ctx context.Context) ([]f1api.ConstructorPoints, error) {
			return c.FetchConstructorPoints(ctx, year)
		}),
	)
}

// applySlot stores a fetch result in its slot. Only the addressed slot is
// touched. ok is false when msg is not a slot result.
func (m Model) applySlot(msg tea.Msg) (next Model, cmd tea.Cmd, ok bool) {
	switch msg := msg.(type) {
	case slotMsg[[]f1api.DriverStanding]:
		m.home.DriverStandings.Apply(msg.value, msg.err, msg.at)
	case slotMsg[[]f1api.ConstructorStanding]:
		m.home.ConstructorStandings.Apply(msg.value, msg.err, msg.at)
	case slotMsg[f1api.Race]:
		m.home.NextEvent.Apply(msg.value, msg.err, msg.at)
	case slotMsg[[]f1api.TeamDrivers]:
		m.home.TeamDrivers.Apply(msg.value, msg.err, msg.at)
	case slotMsg[[]f1api.DriverStats]:
		m.home.DriverStats.Apply(msg.value, msg.err, msg.at)
	case slotMsg[[]f1api.ConstructorStats]:
		m.home.ConstructorStats.Apply(msg.value, msg.err, msg.at)
	case slotMsg[f1api.Countdown]:
		m.home.Countdown.Apply(msg.value, msg.err, msg.at)
		if msg.err == nil {
			cmd = m.startCountdown(msg.value)
		} else {
			m.stopCountdown()
		}
	case slotMsg[[]f1api.Season]:
		m.season.List.Apply(msg.value, msg.err, msg.at)
	case slotMsg[[]f1api.Race]:
		if msg.year != m.season.Year {
			return m, nil, true
		}
		m.season.Calendar.Apply(msg.value, msg.err, msg.at)
	case slotMsg[[]f1api.DriverPoints]:
		if msg.year != m.season.Year {
			return m, nil, true
		}
		m.season.DriverPoints.Apply(msg.value, msg.err, msg.at)
	case slotMsg[[]f1api.ConstructorPoints]:
		if msg.year != m.season.Year {
			return m, nil, true
		}
		m.season.ConstructorPoints.Apply(msg.value, msg.err, msg.at)
	default:
		return m, nil, false
	}

	m.recordResult(msg)
	return m, cmd, true
}

// recordResult updates the header's timestamp and last error.
func (m *Model) recordResult(msg tea.Msg) {
	slot, at, err := slotMeta(msg)
	if at.After(m.lastUpdated) {
		m.lastUpdated = at
	}
	if err != nil {
		m.lastErr = err
		m.lastErrSlot = slot
	}
}

type slotResult interface {
	meta() (slot string, at time.Time, err error)
}

func (s slotMsg[T]) meta() (string, time.Time, error) { return s.slot, s.at, s.err }

func slotMeta(msg tea.Msg) (string, time.Time, error) {
	if r, ok := msg.(slotResult); ok {
		return r.meta()
	}
	return "", time.Time{}, nil
}
