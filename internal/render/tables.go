package render

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"

	"github.com/five82/paddock/internal/f1api"
	"github.com/five82/paddock/internal/state"
)

// Painter decorates a matrix cell according to its finish.
type Painter func(p Podium, s string) string

// PlainPainter leaves cells untouched.
func PlainPainter(_ Podium, s string) string { return s }

// TerminalPainter colors podium finishes with ANSI escapes.
func TerminalPainter(p Podium, s string) string {
	switch p {
	case Gold:
		return text.Colors{text.FgHiYellow, text.Bold}.Sprint(s)
	case Silver:
		return text.Colors{text.FgHiWhite}.Sprint(s)
	case Bronze:
		return text.Colors{text.FgYellow}.Sprint(s)
	default:
		return s
	}
}

type options struct {
	style   table.Style
	painter Painter
	start   int
	count   int
}

// Option tweaks table rendering.
type Option func(*options)

// WithStyle picks the go-pretty border style.
func WithStyle(s table.Style) Option {
	return func(o *options) { o.style = s }
}

// WithPainter sets how matrix cells are decorated.
func WithPainter(p Painter) Option {
	return func(o *options) {
		if p != nil {
			o.painter = p
		}
	}
}

// WithRaceWindow limits a matrix to count race columns starting at start.
// A non-positive count shows every column.
func WithRaceWindow(start, count int) Option {
	return func(o *options) {
		o.start = max(start, 0)
		o.count = count
	}
}

func newOptions(opts []Option) options {
	o := options{style: table.StyleRounded, painter: PlainPainter}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newWriter(o options) table.Writer {
	t := table.NewWriter()
	t.SetStyle(o.style)
	return t
}

// MatrixTable renders a points matrix: position, name, one column per race
// and the season total.
func MatrixTable(m Matrix, opts ...Option) string {
	o := newOptions(opts)
	from, to := window(len(m.Columns), o.start, o.count)

	t := newWriter(o)
	header := table.Row{"#", m.Label}
	for _, c := range m.Columns[from:to] {
		header = append(header, c)
	}
	header = append(header, "Total")
	t.AppendHeader(header)

	for _, r := range m.Rows {
		row := table.Row{r.Position, r.Name}
		for _, c := range r.Cells[from:min(to, len(r.Cells))] {
			row = append(row, o.painter(c.Podium(), c.Text()))
		}
		row = append(row, f1api.FormatPoints(r.Total))
		t.AppendRow(row)
	}

	configs := []table.ColumnConfig{{Number: 1, Align: text.AlignRight}}
	for i := 0; i <= to-from; i++ {
		configs = append(configs, table.ColumnConfig{Number: 3 + i, Align: text.AlignRight, AlignHeader: text.AlignRight})
	}
	t.SetColumnConfigs(configs)
	return t.Render()
}

// window clamps a column range to n columns.
func window(n, start, count int) (int, int) {
	if count <= 0 {
		return 0, n
	}
	start = min(start, max(n-1, 0))
	return start, min(start+count, n)
}

// DriverStandingsTable renders the current driver championship with each
// driver's season counters.
func DriverStandingsTable(rows []f1api.DriverStanding, stats []f1api.DriverStats, opts ...Option) string {
	o := newOptions(opts)
	t := newWriter(o)
	t.AppendHeader(table.Row{"#", "Driver", "Code", "Constructor", "Points", "Wins", "Podiums", "Poles", "DNF"})
	for _, d := range rows {
		s, ok := state.DriverStatsFor(stats, d.ID)
		t.AppendRow(table.Row{
			d.Position, d.Name, d.Driver, d.Constructor, f1api.FormatPoints(d.Points),
			stat(ok, s.Wins), stat(ok, s.Podiums), stat(ok, s.Poles), stat(ok, s.DNF),
		})
	}
	t.SetColumnConfigs(rightAligned(1, 5, 6, 7, 8, 9))
	return t.Render()
}

// ConstructorStandingsTable renders the current constructor championship
// with counters and the driver line-up.
func ConstructorStandingsTable(rows []f1api.ConstructorStanding, stats []f1api.ConstructorStats, teams state.Slot[[]f1api.TeamDrivers], opts ...Option) string {
	o := newOptions(opts)
	t := newWriter(o)
	t.AppendHeader(table.Row{"#", "Constructor", "Drivers", "Points", "Wins", "Podiums", "Poles"})
	for _, c := range rows {
		s, ok := state.ConstructorStatsFor(stats, c.ID)
		t.AppendRow(table.Row{
			c.Position, c.Name, state.TeamLineup(teams, c), f1api.FormatPoints(c.Points),
			stat(ok, s.Wins), stat(ok, s.Podiums), stat(ok, s.Poles),
		})
	}
	t.SetColumnConfigs(rightAligned(1, 4, 5, 6, 7))
	return t.Render()
}

// CalendarTable renders a season schedule with its race session.
func CalendarTable(races []f1api.Race, opts ...Option) string {
	o := newOptions(opts)
	t := newWriter(o)
	t.AppendHeader(table.Row{"Rd", "Event", "Location", "Race", "Weekend"})
	for _, r := range races {
		when := "TBD"
		if s, ok := r.RaceSession(); ok {
			when = strings.TrimSpace(s.Date + " " + s.Time)
		}
		t.AppendRow(table.Row{r.Round, r.EventName, Location(r), when, r.WeekendLabel()})
	}
	t.SetColumnConfigs(rightAligned(1))
	return t.Render()
}

// SeasonsTable lists the known seasons.
func SeasonsTable(seasons []f1api.Season, opts ...Option) string {
	o := newOptions(opts)
	t := newWriter(o)
	t.AppendHeader(table.Row{"Season", "Reference"})
	for _, s := range seasons {
		t.AppendRow(table.Row{s.Year, s.URL})
	}
	return t.Render()
}

// SummaryTable renders the season overview.
func SummaryTable(year int, s state.Summary, opts ...Option) string {
	o := newOptions(opts)
	t := newWriter(o)
	t.SetTitle(fmt.Sprintf("%d Season Overview", year))
	t.AppendRows([]table.Row{
		{"WDC", champion(s.DriverChampion)},
		{"WCC", champion(s.ConstructorChampion)},
		{"Most wins", leader(s.MostWins)},
		{"Most podiums", leader(s.MostPodiums)},
		{"Constructor wins", leader(s.ConstructorWins)},
		{"Races", s.Races},
	})
	return t.Render()
}

// SessionsTable lists the sessions of one event.
func SessionsTable(r f1api.Race, opts ...Option) string {
	o := newOptions(opts)
	t := newWriter(o)
	t.SetTitle(fmt.Sprintf("Round %d: %s", r.Round, r.EventName))
	t.AppendHeader(table.Row{"Session", "Date", "Time"})
	for _, s := range r.Sessions {
		t.AppendRow(table.Row{s.Name, s.Date, s.Time})
	}
	return t.Render()
}

// Location formats "location, country", dropping whichever part is empty.
func Location(r f1api.Race) string {
	return strings.Join(lo.Compact([]string{strings.TrimSpace(r.Location), strings.TrimSpace(r.Country)}), ", ")
}

func champion(c state.Champion) string {
	if c.Name == "" {
		return "-"
	}
	return fmt.Sprintf("%s (%s pts)", c.Name, f1api.FormatPoints(c.Points))
}

func leader(l state.Leader) string {
	if l.Name == "" {
		return "-"
	}
	return fmt.Sprintf("%s (%d)", l.Name, l.Count)
}

func stat(ok bool, v int) string {
	if !ok {
		return "-"
	}
	return fmt.Sprint(v)
}

func rightAligned(cols ...int) []table.ColumnConfig {
	return lo.Map(cols, func(n int, _ int) table.ColumnConfig {
		return table.ColumnConfig{Number: n, Align: text.AlignRight, AlignHeader: text.AlignRight}
	})
}
