package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/five82/gobiview/internal/config"
	"github.com/five82/gobiview/internal/gobi"
	"github.com/five82/gobiview/internal/report"
	"github.com/five82/gobiview/internal/state"
	"github.com/five82/gobiview/internal/storage"
	"github.com/five82/gobiview/internal/ui"
)

// Options configure the gobiview application. Non-empty fields override the
// config file.
type Options struct {
	ConfigPath  string
	Server      string
	Report      string
	Storage     string
	StoragePath string
	PollEvery   int // seconds; zero keeps the configured interval, negative disables
}

// LoadConfig reads the config file and applies the option overrides.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.Server); v != "" {
		cfg.Server = v
	}
	if v := strings.TrimSpace(opts.Report); v != "" {
		cfg.Report = v
	}
	if v := strings.TrimSpace(opts.Storage); v != "" {
		cfg.Storage = strings.ToLower(v)
	}
	if v := strings.TrimSpace(opts.StoragePath); v != "" {
		cfg.StoragePath = v
	}
	if opts.PollEvery != 0 {
		cfg.PollSeconds = opts.PollEvery
	}
	return cfg, nil
}

// OpenSettings opens the configured storage and binds the view settings
// record to it. The caller closes the returned storage.
func OpenSettings(cfg config.Config, logger *slog.Logger) (*report.SettingsStore, storage.Storage, error) {
	store, err := storage.Open(cfg.Storage, cfg.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	return report.NewSettingsStore(store, logger), store, nil
}

// Run boots the gobiview TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	logFile, err := openLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelInfo}))

	settings, store, err := OpenSettings(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	client, err := gobi.NewClient(cfg.Server)
	if err != nil {
		return fmt.Errorf("init gobi client: %w", err)
	}

	location, err := client.Resolve(withSession(cfg.ReportURL()))
	if err != nil {
		return fmt.Errorf("resolve report url: %w", err)
	}

	snapshots := &state.Store{}
	snapshots.SetSource(location)

	// Start background poller
	StartPoller(ctx, snapshots, client, cfg.PollInterval())

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Snapshots: snapshots,
		Settings:  settings,
		Storage:   store,
		Location:  location,
		Logger:    logger,
		Config:    &cfg,
	}
	return ui.Run(uiOpts)
}

// openLog routes the standard logger to path, since the terminal belongs to
// the UI. The returned writer also backs the structured logger.
func openLog(path string) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "gobiview")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// withSession adds a client session id to ref unless one is present. The
// report server keys its result cursors by session.
func withSession(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	q := u.Query()
	if q.Get("session") != "" {
		return ref
	}
	q.Set("session", uuid.NewString())
	u.RawQuery = q.Encode()
	return u.String()
}
