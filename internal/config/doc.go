// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file ($XDG_CONFIG_HOME/worktravel/config.toml or the OS equivalent)
// 3. Project config file (./worktravel.toml), or the file named by -config
// 4. Environment variables (WORKTRAVEL_*), after reading ./.env
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
package config
