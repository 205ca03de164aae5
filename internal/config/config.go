// Package config loads the hierarchical TOML configuration: built-in
// defaults overridden by "<home>/.kild/config.toml", then by
// "./.kild/config.toml", then by CLI flags (applied by the caller after
// Load returns). Unknown keys are tolerated; an invalid agent id or
// terminal id is a hard error raised at resolution time, not at parse
// time, since the config file alone doesn't know the registries.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/kildhq/kild/internal/kilderr"
)

// AgentSection is the top-level [agent] table.
type AgentSection struct {
	Default        string `toml:"default"`
	StartupCommand string `toml:"startup_command"`
	Flags          string `toml:"flags"`
}

// AgentOverride is one entry of the [agents.<id>] table.
type AgentOverride struct {
	StartupCommand string `toml:"startup_command"`
	Flags          string `toml:"flags"`
}

// TerminalSection is the [terminal] table.
type TerminalSection struct {
	Preferred        string `toml:"preferred"`
	SpawnDelayMs     int    `toml:"spawn_delay_ms"`
	MaxRetryAttempts int    `toml:"max_retry_attempts"`
}

// IncludePatternsSection is the [include_patterns] table: files copied
// into a freshly created worktree even though they're gitignored.
type IncludePatternsSection struct {
	Patterns    []string `toml:"patterns"`
	Enabled     bool     `toml:"enabled"`
	MaxFileSize string   `toml:"max_file_size"`
}

// HealthSection is the [health] table.
type HealthSection struct {
	IdleThresholdMinutes int  `toml:"idle_threshold_minutes"`
	RefreshIntervalSecs  int  `toml:"refresh_interval_secs"`
	HistoryEnabled       bool `toml:"history_enabled"`
	HistoryRetentionDays int  `toml:"history_retention_days"`
}

// Config is the fully-resolved, layered configuration.
type Config struct {
	BaseDir         string                   `toml:"-"`
	Agent           AgentSection             `toml:"agent"`
	Agents          map[string]AgentOverride `toml:"agents"`
	Terminal        TerminalSection          `toml:"terminal"`
	IncludePatterns IncludePatternsSection `toml:"include_patterns"`
	Health          HealthSection            `toml:"health"`
}

// Defaults returns the built-in configuration before any file or flag
// overrides are applied.
func Defaults(baseDir string) Config {
	return Config{
		BaseDir: baseDir,
		Agent:   AgentSection{Default: "claude"},
		Agents:  map[string]AgentOverride{},
		Terminal: TerminalSection{
			SpawnDelayMs:     1000,
			MaxRetryAttempts: 5,
		},
		IncludePatterns: IncludePatternsSection{
			Enabled: true,
		},
		Health: HealthSection{
			IdleThresholdMinutes: 10,
			RefreshIntervalSecs:  5,
			HistoryEnabled:       true,
			HistoryRetentionDays: 7,
		},
	}
}

// Load resolves the hierarchical config: defaults, then
// "<home>/.kild/config.toml", then "./.kild/config.toml". A missing
// file at either layer is not an error; a present-but-unparsable file
// is ConfigParseError.
func Load(baseDir string) (Config, error) {
	cfg := Defaults(baseDir)

	home, err := os.UserHomeDir()
	if err == nil {
		if err := mergeFile(&cfg, filepath.Join(home, ".kild", "config.toml")); err != nil {
			return cfg, err
		}
	}
	if err := mergeFile(&cfg, filepath.Join(".kild", "config.toml")); err != nil {
		return cfg, err
	}
	if err := cfg.IncludePatterns.ValidatePatterns(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	var layer Config
	if _, err := toml.DecodeFile(path, &layer); err != nil {
		return kilderr.ErrConfigParseError(path, err)
	}
	mergeInto(cfg, layer)
	return nil
}

// mergeInto overlays non-zero fields of layer onto cfg. Empty strings,
// zero ints, and false bools in the layer are treated as "not set"
// rather than explicit overrides to zero — a config file only ever
// narrows, it never has to repeat every default.
func mergeInto(cfg *Config, layer Config) {
	if layer.Agent.Default != "" {
		cfg.Agent.Default = layer.Agent.Default
	}
	if layer.Agent.StartupCommand != "" {
		cfg.Agent.StartupCommand = layer.Agent.StartupCommand
	}
	if layer.Agent.Flags != "" {
		cfg.Agent.Flags = layer.Agent.Flags
	}
	for id, override := range layer.Agents {
		cfg.Agents[id] = override
	}
	if layer.Terminal.Preferred != "" {
		cfg.Terminal.Preferred = layer.Terminal.Preferred
	}
	if layer.Terminal.SpawnDelayMs != 0 {
		cfg.Terminal.SpawnDelayMs = layer.Terminal.SpawnDelayMs
	}
	if layer.Terminal.MaxRetryAttempts != 0 {
		cfg.Terminal.MaxRetryAttempts = layer.Terminal.MaxRetryAttempts
	}
	if len(layer.IncludePatterns.Patterns) > 0 {
		cfg.IncludePatterns.Patterns = layer.IncludePatterns.Patterns
	}
	cfg.IncludePatterns.Enabled = layer.IncludePatterns.Enabled || cfg.IncludePatterns.Enabled
	if layer.IncludePatterns.MaxFileSize != "" {
		cfg.IncludePatterns.MaxFileSize = layer.IncludePatterns.MaxFileSize
	}
	if layer.Health.IdleThresholdMinutes != 0 {
		cfg.Health.IdleThresholdMinutes = layer.Health.IdleThresholdMinutes
	}
	if layer.Health.RefreshIntervalSecs != 0 {
		cfg.Health.RefreshIntervalSecs = layer.Health.RefreshIntervalSecs
	}
	if layer.Health.HistoryRetentionDays != 0 {
		cfg.Health.HistoryRetentionDays = layer.Health.HistoryRetentionDays
	}
}

// ResolveStartupCommand applies the override precedence "agent-override
// in config > global override > registry default" for the given agent
// id and its registry default command/flags.
func (c Config) ResolveStartupCommand(agentID, registryDefaultCmd string) (command, flags string) {
	command = registryDefaultCmd
	if c.Agent.StartupCommand != "" {
		command = c.Agent.StartupCommand
	}
	flags = c.Agent.Flags
	if override, ok := c.Agents[agentID]; ok {
		if override.StartupCommand != "" {
			command = override.StartupCommand
		}
		if override.Flags != "" {
			flags = override.Flags
		}
	}
	return command, flags
}
