package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings paddock reads from config.toml.
type Config struct {
	APIBase        string
	RequestTimeout time.Duration
	LogDir         string
}

const (
	defaultConfigPath     = "~/.config/paddock/config.toml"
	defaultAPIBase        = "http://localhost:8000/api/f1"
	defaultLogDir         = "~/.local/share/paddock"
	defaultTimeoutSeconds = 5
	maxTimeoutSeconds     = 120
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBase:        defaultAPIBase,
		RequestTimeout: defaultTimeoutSeconds * time.Second,
		LogDir:         mustExpand(defaultLogDir),
	}
}

// DefaultPath returns the unexpanded default config location.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses config.toml, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase        string `toml:"api_base"`
		TimeoutSeconds int    `toml:"request_timeout_seconds"`
		LogDir         string `toml:"log_dir"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if base := strings.TrimSpace(raw.APIBase); base != "" {
		cfg.APIBase = base
	}
	switch {
	case raw.TimeoutSeconds < 0:
		return Config{}, fmt.Errorf("parse config: request_timeout_seconds must not be negative")
	case raw.TimeoutSeconds > maxTimeoutSeconds:
		cfg.RequestTimeout = maxTimeoutSeconds * time.Second
	case raw.TimeoutSeconds > 0:
		cfg.RequestTimeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	if dir := strings.TrimSpace(raw.LogDir); dir != "" {
		cfg.LogDir = mustExpand(dir)
	}

	return cfg, nil
}

// LogPath returns the path of paddock's log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return filepath.Join(mustExpand(defaultLogDir), "paddock.log")
	}
	return filepath.Join(c.LogDir, "paddock.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading tilde and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
