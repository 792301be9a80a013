package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the gobiview settings.
type Config struct {
	Server      string
	Report      string
	Storage     string
	StoragePath string // empty uses the backend default
	PollSeconds int    // negative disables polling
	LogFile     string
}

const (
	defaultConfigPath  = "~/.config/gobiview/config.toml"
	defaultServer      = "http://127.0.0.1:8080"
	defaultReport      = "1"
	defaultStorage     = "file"
	defaultPollSeconds = 30
	defaultLogFile     = "~/.local/state/gobiview/gobiview.log"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Server:      defaultServer,
		Report:      defaultReport,
		Storage:     defaultStorage,
		PollSeconds: defaultPollSeconds,
		LogFile:     mustExpand(defaultLogFile),
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
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
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Server      string `toml:"server"`
		Report      string `toml:"report"`
		Storage     string `toml:"storage"`
		StoragePath string `toml:"storage_path"`
		PollSeconds int    `toml:"poll_seconds"`
		LogFile     string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.Server); v != "" {
		cfg.Server = v
	}
	if v := strings.TrimSpace(raw.Report); v != "" {
		cfg.Report = v
	}
	if v := strings.ToLower(strings.TrimSpace(raw.Storage)); v != "" {
		cfg.Storage = v
	}
	if v := strings.TrimSpace(raw.StoragePath); v != "" {
		cfg.StoragePath = mustExpand(v)
	}
	if raw.PollSeconds != 0 {
		cfg.PollSeconds = raw.PollSeconds
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	return cfg, nil
}

// PollInterval returns the refresh period, or zero when polling is disabled.
func (c Config) PollInterval() time.Duration {
	switch {
	case c.PollSeconds < 0:
		return 0
	case c.PollSeconds == 0:
		return defaultPollSeconds * time.Second
	default:
		return time.Duration(c.PollSeconds) * time.Second
	}
}

// ReportURL returns the server-relative location of the configured report.
// A bare id becomes /report?id=<id>; anything containing a slash or a query
// is used as given.
func (c Config) ReportURL() string {
	report := strings.TrimSpace(c.Report)
	if report == "" {
		report = defaultReport
	}
	if strings.ContainsAny(report, "/?") {
		return report
	}
	return "/report?id=" + url.QueryEscape(report)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
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
