// Package cli implements the paddock command tree: the dashboard as the root
// command plus one-shot commands that print tables.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/five82/paddock/internal/app"
)

const envPrefix = "PADDOCK"

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	configPath string
	prefsPath  string
	apiBase    string
	logDir     string
	debug      bool

	// dashboard only
	poll   int
	season int
}

func (o *rootOptions) appOptions() app.Options {
	return app.Options{
		ConfigPath: o.configPath,
		PrefsPath:  o.prefsPath,
		APIBase:    o.apiBase,
		LogDir:     o.logDir,
		Debug:      o.debug,
		Season:     o.season,
		PollEvery:  o.poll,
	}
}

func (o *rootOptions) setup() (*app.Env, error) {
	return app.Setup(o.appOptions())
}

// NewRootCmd builds the paddock command tree. Every flag can also be set
// through a PADDOCK_* environment variable, e.g. PADDOCK_LOG_DIR.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:           "paddock",
		Short:         "Formula 1 standings, schedules and countdowns in the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(cmd, v)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts.appOptions())
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "",
		"config file (default is ~/.config/paddock/config.toml)")
	pf.StringVar(&opts.prefsPath, "prefs", "",
		"prefs file (default is ~/.config/paddock/prefs.toml)")
	pf.StringVar(&opts.apiBase, "api", "",
		"F1 API base URL, overrides api_base from the config file")
	pf.StringVar(&opts.logDir, "log-dir", "",
		"directory for paddock.log, overrides log_dir from the config file")
	pf.BoolVar(&opts.debug, "debug", false, "log at debug level")

	rootCmd.Flags().IntVar(&opts.poll, "poll", 0, "UI refresh interval in seconds (default 2)")
	rootCmd.Flags().IntVar(&opts.season, "season", 0, "season shown first in the seasons view")

	rootCmd.AddCommand(
		newSeasonsCmd(opts),
		newCalendarCmd(opts),
		newStandingsCmd(opts),
		newPointsCmd(opts),
		newNextCmd(opts),
		newCountdownCmd(opts),
		newSummaryCmd(opts),
	)
	return rootCmd
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "paddock: %v\n", err)
		return 1
	}
	return 0
}

// bindFlags applies environment values to every flag the user did not set
// on the command line.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if bindErr != nil {
			return
		}
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name, fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				bindErr = fmt.Errorf("bind env var for --%s: %w", f.Name, err)
				return
			}
		}
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				bindErr = fmt.Errorf("apply %s_%s: %w", envPrefix, strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_")), err)
			}
		}
	})
	return bindErr
}
