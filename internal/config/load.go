package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	appName         = "worktravel"
	userConfigName  = "config.toml"
	projectFileName = "worktravel.toml"
	envPrefix       = "WORKTRAVEL_"
)

// Load builds the configuration from defaults, config files, the
// environment and the flags in args. Flags are defined on fs; the
// positional arguments remain available from fs.Args().
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	// 1. Defaults
	setDefaults(cfg)

	// 2. User config file
	if p := findUserConfigFile(); p != "" {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", p, err)
		}
	}

	// 3. Explicit -config file, otherwise the project file
	if p := explicitConfigFile(args); p != "" {
		if err := loadConfigFile(cfg, expandPath(p)); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", p, err)
		}
	} else if p := findProjectConfigFile(); p != "" {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", p, err)
		}
	}

	// 4. Environment, with ./.env filling in unset variables
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	loadFromEnv(cfg)

	// 5. Flags
	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	cfg.DataDir = expandPath(cfg.DataDir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

func findUserConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(dir, appName, userConfigName)
	if fileExists(p) {
		return p
	}
	return ""
}

func findProjectConfigFile() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	p := filepath.Join(wd, projectFileName)
	if fileExists(p) {
		return p
	}
	return ""
}

// explicitConfigFile finds -config before the flag set is parsed, so the
// file can sit below env and flags in priority.
func explicitConfigFile(args []string) string {
	for i, a := range args {
		if a == "--" {
			return ""
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if !strings.HasPrefix(a, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func loadFromEnv(cfg *Config) {
	if v, ok := lookupEnv("BACKEND"); ok {
		cfg.Backend = v
	}
	if v, ok := lookupEnv("DATA_DIR"); ok {
		cfg.DataDir = v
	}
	if v, ok := lookupEnv("ID_SCHEME"); ok {
		cfg.IDScheme = v
	}
	if v, ok := lookupEnv("LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookupEnv("LOG_FORMAT"); ok {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v, ok := lookupEnv("THEME"); ok {
		cfg.Theme = strings.ToLower(v)
	}
}

func lookupEnv(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet(appName, flag.ContinueOnError)
	}
	var configPath string
	fs.StringVar(&configPath, "config", "", "Path to a TOML config file")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "Storage backend: json, sqlite or memory")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory for stored data")
	fs.StringVar(&cfg.IDScheme, "id-scheme", cfg.IDScheme, "Record id scheme: millis or uuid")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text, json or logfmt")
	fs.StringVar(&cfg.Theme, "theme", cfg.Theme, "List theme: classic, neon or mono")
	fs.BoolVar(&cfg.Group, "group", cfg.Group, "Group list output by pending/done")
	return fs.Parse(args)
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
