package app

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func TestWithSession_AddsUUIDOnce(t *testing.T) {
	got := withSession("/report?id=3")
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse %q: %v", got, err)
	}
	if u.Query().Get("id") != "3" {
		t.Fatalf("id = %q, want 3", u.Query().Get("id"))
	}
	if _, err := uuid.Parse(u.Query().Get("session")); err != nil {
		t.Fatalf("session = %q, want a uuid: %v", u.Query().Get("session"), err)
	}

	if again := withSession(got); again != got {
		t.Fatalf("withSession(%q) = %q, want unchanged", got, again)
	}
}

func TestLoadConfig_OptionsOverrideFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("server = \"file:1\"\nreport = \"5\"\npoll_seconds = 10\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(Options{ConfigPath: path, Server: "flag:2", Storage: "Memory", PollEvery: -1})
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Server != "flag:2" {
		t.Fatalf("Server = %q, want flag override", cfg.Server)
	}
	if cfg.Report != "5" {
		t.Fatalf("Report = %q, want value from file", cfg.Report)
	}
	if cfg.Storage != "memory" {
		t.Fatalf("Storage = %q, want memory", cfg.Storage)
	}
	if cfg.PollInterval() != 0 {
		t.Fatalf("PollInterval = %v, want disabled", cfg.PollInterval())
	}
}

func TestOpenSettings_UsesConfiguredBackend(t *testing.T) {
	cfg, err := LoadConfig(Options{
		ConfigPath:  filepath.Join(t.TempDir(), "missing.toml"),
		Storage:     "file",
		StoragePath: filepath.Join(t.TempDir(), "view.toml"),
	})
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	settings, store, err := OpenSettings(cfg, nil)
	if err != nil {
		t.Fatalf("OpenSettings returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if _, ok, err := settings.Load(); err != nil || ok {
		t.Fatalf("Load on fresh storage = (%v, %v), want nothing stored", ok, err)
	}
	if _, err := os.Stat(cfg.StoragePath); !os.IsNotExist(err) {
		t.Fatalf("storage file created before first write: %v", err)
	}
}
