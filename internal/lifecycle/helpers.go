package lifecycle

import (
	"github.com/kildhq/kild/internal/agent"
	"github.com/kildhq/kild/internal/terminal"
)

func terminalSpawnConfig(workDir, command, title string) terminal.SpawnConfig {
	return terminal.SpawnConfig{WorkDir: workDir, Command: command, Title: title}
}

// agentDefOrEmpty resolves an agent id to its Definition for pid
// rediscovery, falling back to a patternless Definition (matching
// nothing) if the stored agent id no longer parses — a session created
// under a since-removed agent kind must not crash the restart path.
func agentDefOrEmpty(id string) agent.Definition {
	def, err := agent.Parse(id)
	if err != nil {
		return agent.Definition{}
	}
	return def
}
