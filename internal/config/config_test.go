package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if got := cfg.ListenAddr(); got != "127.0.0.1:37780" {
		t.Errorf("ListenAddr = %q", got)
	}
	if cfg.Reminders.LeadIn != -0.1 {
		t.Errorf("lead_in = %v, want -0.1", cfg.Reminders.LeadIn)
	}
	if cfg.Reminders.BirthdayWindowDays != 14 {
		t.Errorf("birthday_window_days = %d, want 14", cfg.Reminders.BirthdayWindowDays)
	}
	if cfg.Reminders.SearchLimit != 20 {
		t.Errorf("search_limit = %d, want 20", cfg.Reminders.SearchLimit)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
port = 9999

[database]
path = "/tmp/rolodex-test.db"

[reminders]
lead_in = -0.2
birthday_window_days = 30
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("port = %d, want 9999", cfg.Server.Port)
	}
	// Unset keys keep their defaults.
	if cfg.Server.Bind != "127.0.0.1" {
		t.Errorf("bind = %q, want default", cfg.Server.Bind)
	}
	if cfg.Database.Path != "/tmp/rolodex-test.db" {
		t.Errorf("db path = %q", cfg.Database.Path)
	}
	if cfg.Reminders.LeadIn != -0.2 {
		t.Errorf("lead_in = %v, want -0.2", cfg.Reminders.LeadIn)
	}
	if cfg.Reminders.BirthdayWindowDays != 30 {
		t.Errorf("birthday_window_days = %d, want 30", cfg.Reminders.BirthdayWindowDays)
	}
	if cfg.Reminders.SearchLimit != 20 {
		t.Errorf("search_limit = %d, want default 20", cfg.Reminders.SearchLimit)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server\nport ="), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ROLODEX_DB", "/tmp/env-override.db")
	t.Setenv("ROLODEX_PORT", "4242")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path != "/tmp/env-override.db" {
		t.Errorf("db path = %q, want env override", cfg.Database.Path)
	}
	if cfg.Server.Port != 4242 {
		t.Errorf("port = %d, want 4242", cfg.Server.Port)
	}

	t.Setenv("ROLODEX_PORT", "not-a-port")
	if _, err := Load(""); err == nil {
		t.Error("expected error for bad ROLODEX_PORT")
	}
}
