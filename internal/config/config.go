package config

import (
	"fmt"
	"strings"
)

const (
	DefaultBackend   = "json"
	DefaultDataDir   = "~/.worktravel"
	DefaultIDScheme  = "millis"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
	DefaultTheme     = "classic"
)

// Config is the full runtime configuration.
type Config struct {
	// Backend selects the persistence backend: json, sqlite or memory.
	Backend string `toml:"backend"`
	// DataDir holds the backend's files.
	DataDir string `toml:"data_dir"`
	// IDScheme picks the record id generator: millis or uuid.
	IDScheme string `toml:"id_scheme"`

	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	// Theme styles list output: classic, neon or mono.
	Theme string `toml:"theme"`
	// Group splits list output into pending and done.
	Group bool `toml:"group"`
}

func setDefaults(cfg *Config) {
	cfg.Backend = DefaultBackend
	cfg.DataDir = DefaultDataDir
	cfg.IDScheme = DefaultIDScheme
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.Theme = DefaultTheme
}

// Validate rejects values no component understands.
func (c *Config) Validate() error {
	switch c.Backend {
	case "json", "sqlite", "memory":
	default:
		return fmt.Errorf("backend: unknown value %q (want json, sqlite or memory)", c.Backend)
	}
	switch c.IDScheme {
	case "millis", "uuid":
	default:
		return fmt.Errorf("id_scheme: unknown value %q (want millis or uuid)", c.IDScheme)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("log_level: unknown value %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log_format: unknown value %q", c.LogFormat)
	}
	switch c.Theme {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("theme: unknown value %q (want classic, neon or mono)", c.Theme)
	}
	if strings.TrimSpace(c.DataDir) == "" && c.Backend != "memory" {
		return fmt.Errorf("data_dir: empty")
	}
	return nil
}
