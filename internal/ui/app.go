package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/five82/paddock/internal/countdown"
	"github.com/five82/paddock/internal/f1api"
	"github.com/five82/paddock/internal/logging"
	"github.com/five82/paddock/internal/prefs"
	"github.com/five82/paddock/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewHome View = iota
	ViewSeasons
	ViewLogs
)

var viewOrder = []View{ViewHome, ViewSeasons, ViewLogs}

func (v View) String() string {
	switch v {
	case ViewSeasons:
		return "Seasons"
	case ViewLogs:
		return "Logs"
	default:
		return "Home"
	}
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    f1api.Fetcher
	Logger    *zap.Logger
	LogPath   string
	ThemeName string
	Season    int
	PrefsPath string
	PollTick  time.Duration

	// Now and CountdownOptions replace the wall clock in tests.
	Now              func() time.Time
	CountdownOptions []countdown.Option
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx           context.Context
	client        f1api.Fetcher
	logger        *zap.Logger
	prefsPath     string
	logPath       string
	pollTick      time.Duration
	now           func() time.Time
	countdownOpts []countdown.Option
	keys          keyMap

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	modal       Modal

	lastUpdated time.Time
	lastErr     error
	lastErrSlot string

	// Home state
	home                state.Home
	homeCursor          int
	expandedDriver      int
	expandedConstructor int
	homeViewport        viewport.Model

	// Countdown state. gen identifies the live subscription; messages from
	// older ones are dropped.
	sub          *countdown.Subscription
	countdownGen int
	remaining    countdown.Breakdown
	counting     bool

	// Seasons state
	season         state.Season
	seasonsStarted bool
	seasonTab      SeasonTab
	raceOffset     int
	seasonViewport viewport.Model

	// Log state
	logViewport viewport.Model
	logState    logState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		ctx:           ctx,
		client:        opts.Client,
		logger:        logging.OrNop(opts.Logger),
		prefsPath:     prefsPath,
		logPath:       opts.LogPath,
		pollTick:      pollTick,
		now:           now,
		countdownOpts: opts.CountdownOptions,
		keys:          DefaultKeyMap(),
		theme:         GetTheme(opts.ThemeName),
		currentView:   ViewHome,
		season:        state.Season{Year: state.DefaultSeason(opts.Season, now())},
		logState:      logState{follow: true},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	if m.client != nil {
		cmds = append(cmds, m.homeCmds())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layoutViewports()
		m.refreshContent()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case countdownMsg:
		if msg.gen != m.countdownGen || m.sub == nil {
			return m, nil
		}
		m.remaining = msg.remaining
		m.counting = true
		m.refreshContent()
		return m, waitCountdown(m.sub, m.countdownGen)

	case countdownDoneMsg:
		if msg.gen == m.countdownGen {
			m.sub = nil
		}
		return m, nil

	case seasonPickedMsg:
		return m.selectSeason(msg.year)

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil
	}

	if next, cmd, ok := m.applySlot(msg); ok {
		next.refreshContent()
		return next, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		next, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = next
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stopCountdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.refreshContent()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m.refresh()

	case key.Matches(msg, m.keys.Tab):
		return m.switchView(viewOrder[(lo.IndexOf(viewOrder, m.currentView)+1)%len(viewOrder)])

	case key.Matches(msg, m.keys.ShiftTab):
		return m.switchView(viewOrder[(lo.IndexOf(viewOrder, m.currentView)+len(viewOrder)-1)%len(viewOrder)])

	case key.Matches(msg, m.keys.ViewHome), key.Matches(msg, m.keys.Escape):
		return m.switchView(ViewHome)

	case key.Matches(msg, m.keys.ViewSeasons):
		return m.switchView(ViewSeasons)

	case key.Matches(msg, m.keys.ViewLogs):
		return m.switchView(ViewLogs)
	}

	switch m.currentView {
	case ViewHome:
		return m.handleHomeKey(msg)
	case ViewSeasons:
		return m.handleSeasonsKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	}
	return m, nil
}

// switchView activates v, kicking off its first load if needed.
func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	m.currentView = v
	var cmd tea.Cmd
	switch v {
	case ViewSeasons:
		if !m.seasonsStarted && m.client != nil {
			m.seasonsStarted = true
			cmd = tea.Batch(m.seasonListCmd(), m.seasonYearCmds(m.season.Year))
		}
	case ViewLogs:
		cmd = m.refreshLogs()
	}
	m.refreshContent()
	return m, cmd
}

// refresh refetches every slot of the current view. On the home view the
// running countdown is stopped first; the new one starts from the refetched
// snapshot.
func (m Model) refresh() (tea.Model, tea.Cmd) {
	m.lastErr = nil
	m.lastErrSlot = ""
	switch m.currentView {
	case ViewHome:
		m.stopCountdown()
		m.refreshContent()
		if m.client == nil {
			return m, nil
		}
		return m, m.homeCmds()
	case ViewSeasons:
		if m.client == nil {
			return m, nil
		}
		m.seasonsStarted = true
		return m, tea.Batch(m.seasonListCmd(), m.seasonYearCmds(m.season.Year))
	case ViewLogs:
		return m, m.refreshLogs()
	}
	return m, nil
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.currentView == ViewLogs && m.logState.follow {
		if cmd := m.refreshLogs(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Season: m.season.Year}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", zap.String("path", m.prefsPath), zap.Error(err))
	}
}

// layoutViewports sizes every viewport for the current window.
func (m *Model) layoutViewports() {
	w := maxInt(m.width-4, 1)
	m.homeViewport = resizeViewport(m.homeViewport, w, maxInt(m.height-4, 1))
	m.seasonViewport = resizeViewport(m.seasonViewport, w, maxInt(m.height-6, 1))
	m.logViewport = resizeViewport(m.logViewport, w, maxInt(m.height-5, 1))
}

func resizeViewport(vp viewport.Model, w, h int) viewport.Model {
	if vp.Width == 0 && vp.Height == 0 {
		return viewport.New(w, h)
	}
	vp.Width = w
	vp.Height = h
	return vp
}

// refreshContent re-renders the text of every viewport.
func (m *Model) refreshContent() {
	if !m.ready {
		return
	}
	m.homeViewport.SetContent(m.renderHomeContent())
	m.seasonViewport.SetContent(m.renderSeasonContent())
	m.updateLogViewport()
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	// Header line 1: logo + status
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Header line 2: command bar
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewHome:
		return m.renderHome()
	case ViewSeasons:
		return m.renderSeasons()
	case ViewLogs:
		return m.renderLogs()
	default:
		return ""
	}
}

// Messages

type tickMsg time.Time

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until it exits. Any running
// countdown is stopped before returning.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.stopCountdown()
	}
	if errors.Is(err, tea.ErrProgramKilled) && errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
