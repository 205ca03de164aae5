package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults("/home/u/.kild")
	if cfg.Agent.Default != "claude" {
		t.Errorf("default agent = %q, want claude", cfg.Agent.Default)
	}
	if cfg.Health.IdleThresholdMinutes != 10 {
		t.Errorf("idle threshold = %d, want 10", cfg.Health.IdleThresholdMinutes)
	}
	if cfg.Terminal.SpawnDelayMs != 1000 || cfg.Terminal.MaxRetryAttempts != 5 {
		t.Errorf("terminal defaults = %+v", cfg.Terminal)
	}
}

func TestLoadMergesProjectConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, ".kild"), 0755); err != nil {
		t.Fatal(err)
	}
	content := "[agent]\ndefault = \"gemini\"\n\n[health]\nidle_threshold_minutes = 20\n"
	if err := os.WriteFile(filepath.Join(dir, ".kild", "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("/home/u/.kild")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Agent.Default != "gemini" {
		t.Errorf("agent default = %q, want gemini", cfg.Agent.Default)
	}
	if cfg.Health.IdleThresholdMinutes != 20 {
		t.Errorf("idle threshold = %d, want 20", cfg.Health.IdleThresholdMinutes)
	}
	// Untouched default survives the merge.
	if cfg.Terminal.SpawnDelayMs != 1000 {
		t.Errorf("spawn delay = %d, want default 1000", cfg.Terminal.SpawnDelayMs)
	}
}

func TestResolveStartupCommandPrecedence(t *testing.T) {
	cfg := Defaults("")
	cfg.Agent.StartupCommand = "global-override"
	cfg.Agents = map[string]AgentOverride{"claude": {StartupCommand: "per-agent-override"}}

	cmd, _ := cfg.ResolveStartupCommand("claude", "claude-default")
	if cmd != "per-agent-override" {
		t.Errorf("command = %q, want per-agent override to win", cmd)
	}
	cmd, _ = cfg.ResolveStartupCommand("gemini", "gemini-default")
	if cmd != "global-override" {
		t.Errorf("command = %q, want global override for agent without per-agent entry", cmd)
	}
}
