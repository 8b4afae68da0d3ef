package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds all rolodex configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Reminders RemindersConfig `toml:"reminders"`
}

type ServerConfig struct {
	Bind string `toml:"bind"`
	Port int    `toml:"port"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

// RemindersConfig surfaces the reminder engine's tuning constants. They
// ship with deliberate defaults; override them here rather than in code.
type RemindersConfig struct {
	LeadIn             float64 `toml:"lead_in"`              // urgency cutoff, default -0.1
	BirthdayWindowDays int     `toml:"birthday_window_days"` // default 14
	SearchLimit        int     `toml:"search_limit"`         // default 20
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 37780,
		},
		Database: DatabaseConfig{
			Path: "", // resolved at runtime via store.DefaultDBPath()
		},
		Reminders: RemindersConfig{
			LeadIn:             -0.1,
			BirthdayWindowDays: 14,
			SearchLimit:        20,
		},
	}
}

// DefaultPath returns the default config location: ~/.rolodex/config.toml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".rolodex", "config.toml"), nil
}

// Load reads TOML config from path, layered over Default(). A missing file
// is not an error; defaults apply. After the file, environment variables
// ROLODEX_DB and ROLODEX_PORT override.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if dbPath := os.Getenv("ROLODEX_DB"); dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if port := os.Getenv("ROLODEX_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return cfg, fmt.Errorf("ROLODEX_PORT %q: %w", port, err)
		}
		cfg.Server.Port = p
	}

	return cfg, nil
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
