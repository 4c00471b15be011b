package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/five82/paddock/internal/app"
	"github.com/five82/paddock/internal/calendar"
	"github.com/five82/paddock/internal/countdown"
	"github.com/five82/paddock/internal/f1api"
	"github.com/five82/paddock/internal/render"
	"github.com/five82/paddock/internal/state"
)

// runWithEnv sets up the shared dependencies for a one-shot command.
func runWithEnv(opts *rootOptions, fn func(ctx context.Context, env *app.Env, out io.Writer) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		env, err := opts.setup()
		if err != nil {
			return err
		}
		defer env.Close()
		env.Logger.Debug("running command", zap.String("command", cmd.Name()))
		return fn(cmd.Context(), env, cmd.OutOrStdout())
	}
}

// loadError logs a failed fetch and wraps it for the exit message.
func loadError(env *app.Env, slot string, err error) error {
	env.Logger.Warn("fetch failed", zap.String("slot", slot), zap.Error(err))
	return fmt.Errorf("load %s: %w", slot, err)
}

// seasonYear resolves --year: the flag, the remembered season, then the
// current year.
func seasonYear(flag int, env *app.Env) int {
	if flag > 0 {
		return flag
	}
	return state.DefaultSeason(env.Prefs.Season, time.Now())
}

func newSeasonsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seasons",
		Short: "List every season the API knows about",
		Args:  cobra.NoArgs,
		RunE: runWithEnv(opts, func(ctx context.Context, env *app.Env, out io.Writer) error {
			seasons, err := env.Client.FetchSeasons(ctx)
			if err != nil {
				return loadError(env, state.SlotSeasons, err)
			}
			if len(seasons) == 0 {
				_, err := fmt.Fprintln(out, "No seasons available.")
				return err
			}
			_, err = fmt.Fprintln(out, render.SeasonsTable(seasons))
			return err
		}),
	}
}

func newCalendarCmd(opts *rootOptions) *cobra.Command {
	var (
		year    int
		icsPath string
	)
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show a season schedule or export it as iCalendar",
		Args:  cobra.NoArgs,
		RunE: runWithEnv(opts, func(ctx context.Context, env *app.Env, out io.Writer) error {
			y := seasonYear(year, env)
			races, err := env.Client.FetchRaceCalendar(ctx, y)
			if err != nil {
				return loadError(env, state.SlotCalendar, err)
			}
			if icsPath != "" {
				return exportCalendar(env, out, y, races, icsPath)
			}
			if len(races) == 0 {
				_, err := fmt.Fprintf(out, "No races scheduled for %d.\n", y)
				return err
			}
			_, err = fmt.Fprintln(out, render.CalendarTable(races))
			return err
		}),
	}
	cmd.Flags().IntVar(&year, "year", 0, "season year (default is the last selected season)")
	cmd.Flags().StringVar(&icsPath, "ics", "", `write an .ics file instead of a table ("-" for stdout)`)
	return cmd
}

func exportCalendar(env *app.Env, out io.Writer, year int, races []f1api.Race, path string) error {
	res := calendar.Build(year, races)
	if path == "-" {
		_, err := res.WriteTo(out)
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create ics file: %w", err)
	}
	if _, err := res.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close ics file: %w", err)
	}

	env.Logger.Info("calendar exported",
		zap.Int("year", year),
		zap.String("path", path),
		zap.Int("events", res.Events),
		zap.Int("skipped", res.Skipped),
	)
	msg := fmt.Sprintf("Wrote %d sessions for %d to %s", res.Events, year, path)
	if res.Skipped > 0 {
		msg += fmt.Sprintf(" (%d without a schedule skipped)", res.Skipped)
	}
	_, err = fmt.Fprintln(out, msg)
	return err
}

func newStandingsCmd(opts *rootOptions) *cobra.Command {
	var constructors bool
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Show the current championship standings",
		Args:  cobra.NoArgs,
		RunE: runWithEnv(opts, func(ctx context.Context, env *app.Env, out io.Writer) error {
			home := state.LoadHome(ctx, env.Client, env.Logger)
			if constructors {
				if home.ConstructorStandings.Err != nil {
					return fmt.Errorf("load %s: %w", state.SlotConstructorStandings, home.ConstructorStandings.Err)
				}
				writeWarnings(out, home.ConstructorStats.Message(state.SlotConstructorStats), home.TeamDrivers.Message(state.SlotTeamDrivers))
				return writeTable(out, home.ConstructorStandings.Value, "No standings available.",
					render.ConstructorStandingsTable(home.ConstructorStandings.Value, home.ConstructorStats.Value, home.TeamDrivers))
			}
			if home.DriverStandings.Err != nil {
				return fmt.Errorf("load %s: %w", state.SlotDriverStandings, home.DriverStandings.Err)
			}
			writeWarnings(out, home.DriverStats.Message(state.SlotDriverStats))
			return writeTable(out, home.DriverStandings.Value, "No standings available.",
				render.DriverStandingsTable(home.DriverStandings.Value, home.DriverStats.Value))
		}),
	}
	cmd.Flags().BoolVar(&constructors, "constructors", false, "show the constructor championship")
	return cmd
}

func newPointsCmd(opts *rootOptions) *cobra.Command {
	var (
		year         int
		constructors bool
		color        bool
	)
	cmd := &cobra.Command{
		Use:   "points",
		Short: "Show the per-race points matrix of a season",
		Args:  cobra.NoArgs,
		RunE: runWithEnv(opts, func(ctx context.Context, env *app.Env, out io.Writer) error {
			y := seasonYear(year, env)
			var tableOpts []render.Option
			if color {
				tableOpts = append(tableOpts, render.WithPainter(render.TerminalPainter))
			}

			var matrix render.Matrix
			if constructors {
				rows, err := env.Client.FetchConstructorPoints(ctx, y)
				if err != nil {
					return loadError(env, state.SlotConstructorPoints, err)
				}
				matrix = render.ConstructorMatrix(rows)
			} else {
				rows, err := env.Client.FetchDriverPoints(ctx, y)
				if err != nil {
					return loadError(env, state.SlotDriverPoints, err)
				}
				matrix = render.DriverMatrix(rows)
			}
			if matrix.Empty() {
				_, err := fmt.Fprintf(out, "No points recorded for %d.\n", y)
				return err
			}
			_, err := fmt.Fprintln(out, render.MatrixTable(matrix, tableOpts...))
			return err
		}),
	}
	cmd.Flags().IntVar(&year, "year", 0, "season year (default is the last selected season)")
	cmd.Flags().BoolVar(&constructors, "constructors", false, "show constructors instead of drivers")
	cmd.Flags().BoolVar(&color, "color", false, "color podium finishes")
	return cmd
}

func newNextCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Show the next event and its sessions",
		Args:  cobra.NoArgs,
		RunE: runWithEnv(opts, func(ctx context.Context, env *app.Env, out io.Writer) error {
			race, err := env.Client.FetchNextEvent(ctx)
			if err != nil {
				return loadError(env, state.SlotNextEvent, err)
			}

			var b strings.Builder
			country := race.Country
			if code := strings.TrimSpace(race.CountryCode); code != "" {
				country = "[" + strings.ToUpper(code) + "] " + country
			}
			fmt.Fprintln(&b, country)
			title := race.EventName
			if race.Location != "" {
				title += " @ " + race.Location
			}
			fmt.Fprintln(&b, title)
			fmt.Fprintf(&b, "Race: %s\n", raceStart(race))
			fmt.Fprintln(&b, race.WeekendLabel())
			if len(race.Sessions) > 0 {
				fmt.Fprintln(&b, render.SessionsTable(race))
			}

			// The countdown is a separate slot; its failure does not hide the event.
			left, err := env.Client.FetchNextEventCountdown(ctx)
			if err != nil {
				env.Logger.Warn("fetch failed", zap.String("slot", state.SlotCountdown), zap.Error(err))
				fmt.Fprintln(&b, state.FailureMessage(state.SlotCountdown, err))
			} else {
				fmt.Fprintf(&b, "Starts in %s\n", countdown.FromParts(left.Days, left.Hours, left.Minutes, left.Seconds))
			}
			_, err = io.WriteString(out, b.String())
			return err
		}),
	}
}

func newCountdownCmd(opts *rootOptions) *cobra.Command {
	var once bool
	cmd := &cobra.Command{
		Use:   "countdown",
		Short: "Count down to the next event",
		Long: "Fetches the time left until the next event and counts it down once a\n" +
			"second until it reaches zero or the command is interrupted.",
		Args: cobra.NoArgs,
		RunE: runWithEnv(opts, func(ctx context.Context, env *app.Env, out io.Writer) error {
			left, err := env.Client.FetchNextEventCountdown(ctx)
			if err != nil {
				return loadError(env, state.SlotCountdown, err)
			}
			if once {
				_, err := fmt.Fprintln(out, countdown.FromParts(left.Days, left.Hours, left.Minutes, left.Seconds))
				return err
			}

			sub := countdown.Start(ctx, left.Duration())
			defer sub.Stop()
			for b := range sub.Updates() {
				if _, err := fmt.Fprintf(out, "\r%s", b); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintln(out)
			return err
		}),
	}
	cmd.Flags().BoolVar(&once, "once", false, "print the remaining time once and exit")
	return cmd
}

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show champions and leaders of a season",
		Args:  cobra.NoArgs,
		RunE: runWithEnv(opts, func(ctx context.Context, env *app.Env, out io.Writer) error {
			y := seasonYear(year, env)
			season := state.LoadSeason(ctx, env.Client, y, env.Logger)
			if err := season.DriverPoints.Err; err != nil {
				return fmt.Errorf("load %s: %w", state.SlotDriverPoints, err)
			}
			if err := season.ConstructorPoints.Err; err != nil {
				return fmt.Errorf("load %s: %w", state.SlotConstructorPoints, err)
			}
			_, err := fmt.Fprintln(out, render.SummaryTable(y, state.Summarize(season.DriverPoints.Value, season.ConstructorPoints.Value)))
			return err
		}),
	}
	cmd.Flags().IntVar(&year, "year", 0, "season year (default is the last selected season)")
	return cmd
}

func writeWarnings(out io.Writer, msgs ...string) {
	for _, msg := range msgs {
		if msg != "" {
			fmt.Fprintln(out, msg)
		}
	}
}

func writeTable[T any](out io.Writer, rows []T, empty, table string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(out, empty)
		return err
	}
	_, err := fmt.Fprintln(out, table)
	return err
}

// raceStart formats the race session start in local time.
func raceStart(race f1api.Race) string {
	s, ok := race.RaceSession()
	if !ok {
		return "TBC"
	}
	start, err := calendar.SessionStart(s)
	if err != nil {
		return strings.TrimSpace(s.Date + " " + s.Time)
	}
	return start.Local().Format("Mon 2 Jan 2006, 15:04 MST")
}
