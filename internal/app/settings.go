package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/tidwall/pretty"

	"github.com/five82/gobiview/internal/config"
	"github.com/five82/gobiview/internal/report"
	"github.com/five82/gobiview/internal/storage"
)

// DescribeSettings renders the stored layout record and theme for display.
func DescribeSettings(cfg config.Config, logger *slog.Logger) (string, error) {
	_, store, err := OpenSettings(cfg, logger)
	if err != nil {
		return "", err
	}
	defer func() { _ = store.Close() }()

	path := cfg.StoragePath
	if path == "" {
		path = storage.DefaultPath(cfg.Storage)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "storage: %s (%s)\n", cfg.Storage, path)

	raw, ok, err := store.GetItem(report.SettingsKey)
	if err != nil {
		return "", fmt.Errorf("read view settings: %w", err)
	}
	switch {
	case !ok:
		b.WriteString("layout: none saved\n")
	case !report.ValidSettings(raw):
		fmt.Fprintf(&b, "layout: unreadable record, will be discarded\n%s\n", raw)
	default:
		b.WriteString("layout:\n")
		b.Write(pretty.Pretty([]byte(raw)))
	}

	theme, ok, err := store.GetItem(report.ThemeKey)
	if err != nil {
		return "", fmt.Errorf("read theme: %w", err)
	}
	if !ok {
		theme = "default"
	}
	fmt.Fprintf(&b, "theme: %s\n", theme)
	return b.String(), nil
}

// ResetSettings removes the stored layout record.
func ResetSettings(cfg config.Config, logger *slog.Logger) error {
	settings, store, err := OpenSettings(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return settings.Reset()
}
