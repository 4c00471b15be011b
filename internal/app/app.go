package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/five82/paddock/internal/config"
	"github.com/five82/paddock/internal/f1api"
	"github.com/five82/paddock/internal/logging"
	"github.com/five82/paddock/internal/prefs"
	"github.com/five82/paddock/internal/ui"
)

// Options configure the paddock application. Non-empty fields override the
// matching config file values.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/paddock/prefs.toml
	APIBase    string
	LogDir     string
	Debug      bool
	Season     int // zero uses the remembered season, then the current year
	PollEvery  int // seconds; zero uses default
}

// Env holds the dependencies shared by the dashboard and the one-shot
// commands.
type Env struct {
	Config  config.Config
	Prefs   prefs.Prefs
	Client  *f1api.Client
	Logger  *zap.Logger
	LogPath string // empty when file logging could not be set up
}

// Setup loads configuration and builds the logger and API client.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load paddock config: %w", err)
	}
	if base := strings.TrimSpace(opts.APIBase); base != "" {
		cfg.APIBase = base
	}
	if dir := strings.TrimSpace(opts.LogDir); dir != "" {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return nil, fmt.Errorf("resolve log dir: %w", err)
		}
		cfg.LogDir = expanded
	}

	env := &Env{Config: cfg, Prefs: prefs.Load(opts.PrefsPath)}

	// A broken log directory only costs the log view.
	logger, err := logging.New(cfg.LogDir, opts.Debug)
	if err != nil {
		env.Logger = zap.NewNop()
	} else {
		env.Logger = logger
		env.LogPath = cfg.LogPath()
	}

	client, err := f1api.NewClient(cfg.APIBase, f1api.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("init f1 api client: %w", err)
	}
	env.Client = client

	env.Logger.Debug("paddock configured",
		zap.String("api_base", client.BaseURL()),
		zap.Duration("request_timeout", cfg.RequestTimeout),
		zap.String("log_path", env.LogPath),
	)
	return env, nil
}

// Close flushes the logger.
func (e *Env) Close() {
	if e == nil || e.Logger == nil {
		return
	}
	_ = e.Logger.Sync()
}

// Run boots the paddock TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	season := opts.Season
	if season <= 0 {
		season = env.Prefs.Season
	}

	var interval time.Duration
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	env.Logger.Info("starting dashboard", zap.Int("season", season))
	uiOpts := ui.Options{
		Context:   ctx,
		Client:    env.Client,
		Logger:    env.Logger,
		LogPath:   env.LogPath,
		ThemeName: env.Prefs.Theme,
		Season:    season,
		PrefsPath: opts.PrefsPath,
		PollTick:  interval,
	}
	if err := ui.Run(uiOpts); err != nil {
		env.Logger.Error("dashboard exited", zap.Error(err))
		return err
	}
	return nil
}
