package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap/zaptest"

	"github.com/five82/paddock/internal/countdown"
	"github.com/five82/paddock/internal/f1api"
	"github.com/five82/paddock/internal/prefs"
	"github.com/five82/paddock/internal/state"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeAPI struct {
	seasons     []f1api.Season
	drivers     []f1api.DriverStanding
	driversErr  error
	teams       []f1api.ConstructorStanding
	lineups     []f1api.TeamDrivers
	driverStats []f1api.DriverStats
	next        f1api.Race
	countdown   f1api.Countdown

	calendarYears []int
}

func (f *fakeAPI) FetchSeasons(context.Context) ([]f1api.Season, error) { return f.seasons, nil }

func (f *fakeAPI) FetchRaceCalendar(_ context.Context, year int) ([]f1api.Race, error) {
	f.calendarYears = append(f.calendarYears, year)
	return []f1api.Race{{Round: 1, EventName: fmt.Sprintf("Opener %d", year)}}, nil
}

func (f *fakeAPI) FetchDriverPoints(context.Context, int) ([]f1api.DriverPoints, error) {
	return nil, nil
}

func (f *fakeAPI) FetchConstructorPoints(context.Context, int) ([]f1api.ConstructorPoints, error) {
	return nil, nil
}

func (f *fakeAPI) FetchDriverStandings(context.Context) ([]f1api.DriverStanding, error) {
	return f.drivers, f.driversErr
}

func (f *fakeAPI) FetchConstructorStandings(context.Context) ([]f1api.ConstructorStanding, error) {
	return f.teams, nil
}

func (f *fakeAPI) FetchDriverStats(context.Context) ([]f1api.DriverStats, error) {
	return f.driverStats, nil
}

func (f *fakeAPI) FetchConstructorStats(context.Context) ([]f1api.ConstructorStats, error) {
	return nil, nil
}

func (f *fakeAPI) FetchNextEvent(context.Context) (f1api.Race, error) { return f.next, nil }

func (f *fakeAPI) FetchNextEventCountdown(context.Context) (f1api.Countdown, error) {
	return f.countdown, nil
}

func (f *fakeAPI) FetchTeamDrivers(context.Context) ([]f1api.TeamDrivers, error) {
	return f.lineups, nil
}

var _ f1api.Fetcher = (*fakeAPI)(nil)

// manualClock hands out tickers that only fire on Advance.
type manualClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*manualTicker
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) NewTicker(time.Duration) countdown.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTicker{c: make(chan time.Time), stopped: make(chan struct{})}
	c.tickers = append(c.tickers, t)
	return t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	tickers := append([]*manualTicker(nil), c.tickers...)
	c.mu.Unlock()
	for _, t := range tickers {
		select {
		case t.c <- now:
		case <-t.stopped:
		}
	}
}

type manualTicker struct {
	c       chan time.Time
	stopped chan struct{}
	once    sync.Once
}

func (t *manualTicker) C() <-chan time.Time { return t.c }
func (t *manualTicker) Stop()               { t.once.Do(func() { close(t.stopped) }) }

func newTestModel(t *testing.T, api *fakeAPI, clock *manualClock) Model {
	t.Helper()
	opts := Options{
		Client:    api,
		Logger:    zaptest.NewLogger(t),
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
		Season:    2024,
		Now:       func() time.Time { return testNow },
	}
	if clock != nil {
		opts.CountdownOptions = []countdown.Option{countdown.WithClock(clock)}
	}
	m := New(opts)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	return next.(Model)
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// feed applies msgs in order and returns the commands they produced.
func feed(m Model, msgs ...tea.Msg) (Model, []tea.Cmd) {
	var cmds []tea.Cmd
	for _, msg := range msgs {
		next, cmd := m.Update(msg)
		m = next.(Model)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, cmds
}

func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, c := m.Update(msg)
		m = next.(Model)
		cmd = c
	}
	return m, cmd
}

func withoutCountdown(msgs []tea.Msg) []tea.Msg {
	out := msgs[:0]
	for _, msg := range msgs {
		if _, ok := msg.(slotMsg[f1api.Countdown]); ok {
			continue
		}
		out = append(out, msg)
	}
	return out
}

func TestHomeSlotsFailIndependently(t *testing.T) {
	api := &fakeAPI{
		driversErr: &f1api.StatusError{Endpoint: "get_driver_standings", StatusCode: 503, Status: "503 Service Unavailable"},
		teams: []f1api.ConstructorStanding{
			{ID: "mclaren", Position: 1, Name: "McLaren", Nationality: "GBR", Points: 666},
		},
		lineups: []f1api.TeamDrivers{{ID: "mclaren", Drivers: []string{"Lando Norris", "Oscar Piastri"}}},
		next:    f1api.Race{EventName: "Spanish Grand Prix", Country: "Spain", CountryCode: "es", Location: "Barcelona"},
	}
	m := newTestModel(t, api, nil)
	m, _ = feed(m, withoutCountdown(collect(m.homeCmds()))...)

	content := m.renderHomeContent()
	for _, want := range []string{
		"Failed to load driver standings: ",
		"McLaren",
		"Lando Norris | Oscar Piastri",
		"[ES] Spain",
		"Spanish Grand Prix @ Barcelona",
		"Race: TBC",
		"Standard Weekend",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("home content missing %q:\n%s", want, content)
		}
	}
	if m.lastErrSlot != state.SlotDriverStandings {
		t.Fatalf("lastErrSlot = %q, want %q", m.lastErrSlot, state.SlotDriverStandings)
	}
	if got := classifyError(m.lastErr); got != "HTTP 503" {
		t.Fatalf("classifyError = %q, want HTTP 503", got)
	}
	if !strings.Contains(m.renderHeader(), "HTTP 503") {
		t.Fatalf("header does not show the failure: %q", m.renderHeader())
	}
}

func TestCountdownRunsToZero(t *testing.T) {
	clock := &manualClock{now: testNow}
	m := newTestModel(t, &fakeAPI{}, clock)

	m, cmds := feed(m, slotMsg[f1api.Countdown]{slot: state.SlotCountdown, value: f1api.Countdown{Seconds: 2}, at: testNow})
	if len(cmds) != 1 {
		t.Fatalf("countdown result produced %d commands, want 1", len(cmds))
	}
	wait := cmds[0]

	for _, want := range []int{2, 1, 0} {
		if want < 2 {
			go clock.Advance(time.Second)
		}
		msg, ok := wait().(countdownMsg)
		if !ok {
			t.Fatalf("expected countdownMsg for %ds", want)
		}
		m, cmds = feed(m, msg)
		if m.remaining.Seconds != want || !m.counting {
			t.Fatalf("remaining = %+v counting=%v, want %ds", m.remaining, m.counting, want)
		}
		wait = cmds[0]
	}

	if !strings.Contains(m.renderHomeContent(), "SECONDS") {
		t.Fatalf("countdown not rendered")
	}
	done, ok := wait().(countdownDoneMsg)
	if !ok {
		t.Fatalf("expected countdownDoneMsg after zero")
	}
	m, _ = feed(m, done)
	if m.sub != nil {
		t.Fatalf("subscription kept after completion")
	}
	if !m.remaining.IsZero() {
		t.Fatalf("remaining = %+v, want zero", m.remaining)
	}
}

func TestRefreshStopsCountdown(t *testing.T) {
	clock := &manualClock{now: testNow}
	m := newTestModel(t, &fakeAPI{}, clock)
	m, cmds := feed(m, slotMsg[f1api.Countdown]{slot: state.SlotCountdown, value: f1api.Countdown{Minutes: 5}, at: testNow})
	m, _ = feed(m, cmds[0]())
	old, oldGen := m.sub, m.countdownGen

	m, cmd := press(m, "r")
	if cmd == nil {
		t.Fatalf("refresh returned no fetch command")
	}
	select {
	case <-old.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("old subscription still running after refresh")
	}
	if m.sub != nil || m.counting {
		t.Fatalf("countdown still active after refresh")
	}

	stale := countdownMsg{gen: oldGen, remaining: countdown.Breakdown{Seconds: 42}}
	m, cmds = feed(m, stale)
	if len(cmds) != 0 || m.remaining.Seconds == 42 {
		t.Fatalf("stale countdown update was applied")
	}
}

func TestQuitStopsCountdown(t *testing.T) {
	clock := &manualClock{now: testNow}
	m := newTestModel(t, &fakeAPI{}, clock)
	m, _ = feed(m, slotMsg[f1api.Countdown]{slot: state.SlotCountdown, value: f1api.Countdown{Hours: 1}, at: testNow})
	sub := m.sub

	m, cmd := press(m, "e")
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("quit key did not quit")
	}
	select {
	case <-sub.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("subscription still running after quit")
	}
	if m.sub != nil {
		t.Fatalf("model kept the subscription")
	}
}

func TestCountdownFailureShowsError(t *testing.T) {
	m := newTestModel(t, &fakeAPI{}, nil)
	m, cmds := feed(m, slotMsg[f1api.Countdown]{slot: state.SlotCountdown, err: errors.New("connection refused"), at: testNow})
	if len(cmds) != 0 || m.sub != nil {
		t.Fatalf("failed countdown started a subscription")
	}
	if !strings.Contains(m.renderHomeContent(), "Failed to load next race countdown: connection refused") {
		t.Fatalf("countdown failure not shown:\n%s", m.renderHomeContent())
	}
	if got := classifyError(m.lastErr); got != "OFFLINE" {
		t.Fatalf("classifyError = %q, want OFFLINE", got)
	}
}

func TestExpandTogglesByPosition(t *testing.T) {
	api := &fakeAPI{
		drivers: []f1api.DriverStanding{
			{ID: "max", Position: 1, Name: "Max Verstappen", Driver: "VER", Points: 437},
			{ID: "lando", Position: 2, Name: "Lando Norris", Driver: "NOR", Points: 374},
			{ID: "charles", Position: 3, Name: "Charles Leclerc", Driver: "LEC", Points: 356},
		},
		driverStats: []f1api.DriverStats{{ID: "lando", Poles: 8, Podiums: 13, Wins: 4, DNF: 1}},
	}
	m := newTestModel(t, api, nil)
	m, _ = feed(m, withoutCountdown(collect(m.homeCmds()))...)

	m, _ = press(m, "j", "enter")
	if m.expandedDriver != 2 {
		t.Fatalf("expandedDriver = %d, want 2", m.expandedDriver)
	}
	if !strings.Contains(m.renderHomeContent(), "Poles 8 · Podiums 13 · Wins 4 · DNFs 1") {
		t.Fatalf("stats row not rendered:\n%s", m.renderHomeContent())
	}

	m, _ = press(m, "enter")
	if m.expandedDriver != 0 {
		t.Fatalf("expandedDriver = %d after second toggle, want 0", m.expandedDriver)
	}

	m, _ = press(m, "k", "enter")
	if m.expandedDriver != 1 {
		t.Fatalf("expandedDriver = %d, want 1", m.expandedDriver)
	}
	if strings.Contains(m.renderHomeContent(), "Poles") {
		t.Fatalf("unexpected stats for a driver without data")
	}
}

func TestSeasonNavigationSavesPrefs(t *testing.T) {
	api := &fakeAPI{seasons: []f1api.Season{{Year: 2025}, {Year: 2024}, {Year: 2023}}}
	m := newTestModel(t, api, nil)

	m, cmd := press(m, "2")
	if m.currentView != ViewSeasons || cmd == nil {
		t.Fatalf("seasons view not entered with a fetch")
	}
	m, _ = feed(m, collect(cmd)...)
	if !m.season.Calendar.Ready() {
		t.Fatalf("calendar not loaded")
	}

	m, cmd = press(m, "[")
	if m.season.Year != 2023 {
		t.Fatalf("Year = %d after older, want 2023", m.season.Year)
	}
	if !m.season.Calendar.Pending() {
		t.Fatalf("per-year slots not reset on season change")
	}
	if got := prefs.Load(m.prefsPath).Season; got != 2023 {
		t.Fatalf("saved season = %d, want 2023", got)
	}

	// A late result for the previous season must not land in the new one.
	m, _ = feed(m, slotMsg[[]f1api.Race]{slot: state.SlotCalendar, year: 2024, value: []f1api.Race{{Round: 9}}, at: testNow})
	if !m.season.Calendar.Pending() {
		t.Fatalf("stale calendar applied")
	}

	m, _ = feed(m, collect(cmd)...)
	if !strings.Contains(m.renderSeasonContent(), "Opener 2023") {
		t.Fatalf("calendar for 2023 not shown:\n%s", m.renderSeasonContent())
	}
	if got := api.calendarYears; len(got) != 2 || got[1] != 2023 {
		t.Fatalf("calendar fetched for %v, want [2024 2023]", got)
	}

	m, _ = press(m, "]", "]")
	if m.season.Year != 2025 {
		t.Fatalf("Year = %d after newer twice, want 2025", m.season.Year)
	}
	if _, cmd = press(m, "]"); cmd != nil {
		t.Fatalf("newer past the newest season returned a command")
	}
}

func TestSeasonPickerSelectsYear(t *testing.T) {
	api := &fakeAPI{seasons: []f1api.Season{{Year: 2025}, {Year: 2024}, {Year: 2023}}}
	m := newTestModel(t, api, nil)
	m, cmd := press(m, "2")
	m, _ = feed(m, collect(cmd)...)

	m, _ = press(m, "p")
	if m.modal == nil {
		t.Fatalf("picker not opened")
	}
	if !strings.Contains(m.View(), "Select Season") {
		t.Fatalf("picker not rendered")
	}

	m, _ = press(m, "j")
	m, cmd = press(m, "enter")
	if m.modal != nil {
		t.Fatalf("picker still open after confirm")
	}
	m, _ = feed(m, collect(cmd)...)
	if m.season.Year != 2023 {
		t.Fatalf("Year = %d, want 2023", m.season.Year)
	}

	m, _ = press(m, "p", "esc")
	if m.modal != nil || m.season.Year != 2023 {
		t.Fatalf("esc should close the picker without changing season")
	}
}

func TestSeasonTabsShowLoadingState(t *testing.T) {
	m := newTestModel(t, &fakeAPI{}, nil)
	m, _ = press(m, "2")

	if !strings.Contains(m.renderSeasonContent(), "Loading race calendar...") {
		t.Fatalf("calendar tab: %q", m.renderSeasonContent())
	}
	m, _ = press(m, "t")
	if m.seasonTab != TabDrivers {
		t.Fatalf("seasonTab = %v, want Drivers", m.seasonTab)
	}
	if !strings.Contains(m.renderSeasonContent(), "Loading driver standings...") {
		t.Fatalf("drivers tab: %q", m.renderSeasonContent())
	}
	m, _ = press(m, "t", "t", "t")
	if m.seasonTab != TabCalendar {
		t.Fatalf("tabs did not wrap, got %v", m.seasonTab)
	}
}

func TestCycleThemeSavesPrefs(t *testing.T) {
	m := newTestModel(t, &fakeAPI{}, nil)
	m, _ = press(m, "T")
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	got := prefs.Load(m.prefsPath)
	if got.Theme != "Kanagawa" || got.Season != 2024 {
		t.Fatalf("saved prefs = %+v", got)
	}
}

func TestTabCyclesViews(t *testing.T) {
	m := newTestModel(t, &fakeAPI{}, nil)
	want := []View{ViewSeasons, ViewLogs, ViewHome}
	for _, v := range want {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(Model)
		if m.currentView != v {
			t.Fatalf("currentView = %v, want %v", m.currentView, v)
		}
	}
}

func TestLogsViewWithoutFile(t *testing.T) {
	m := newTestModel(t, &fakeAPI{}, nil)
	m, cmd := press(m, "3")
	if cmd != nil {
		t.Fatalf("log refresh without a path returned a command")
	}
	if !strings.Contains(m.View(), "File logging is disabled.") {
		t.Fatalf("logs view: %q", m.View())
	}
}

func TestClassifyError(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&f1api.StatusError{StatusCode: 404}, "HTTP 404"},
		{&f1api.ShapeError{Endpoint: "get_seasons", Want: "array"}, "BAD DATA"},
		{errors.New("dial tcp: lookup api: no such host"), "HOST NOT FOUND"},
		{context.DeadlineExceeded, "TIMEOUT"},
		{errors.New("boom"), "ERROR"},
	}
	for _, tc := range cases {
		if got := classifyError(tc.err); got != tc.want {
			t.Errorf("classifyError(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
