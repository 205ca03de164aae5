package store

import (
	"encoding/json"
	"os"
)

// SaveAgentStatus writes the agent-status sidecar. This MUST NOT touch
// the primary session record beyond last_activity, which callers update
// separately via SaveSession — the sidecar write and the heartbeat
// write are independent, last-writer-wins operations.
func (s *Store) SaveAgentStatus(id string, info AgentStatusInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(s.agentSidecarPath(id), data, 0644)
}

// LoadAgentStatus reads the agent-status sidecar. Absence or corruption
// both resolve to (zero value, false) — never an error — since the
// sidecar is an optional freshness signal, not required state.
func (s *Store) LoadAgentStatus(id string) (AgentStatusInfo, bool) {
	var info AgentStatusInfo
	if !readSidecar(s.agentSidecarPath(id), &info) {
		return AgentStatusInfo{}, false
	}
	return info, true
}

// SavePRInfo writes the PR-info sidecar.
func (s *Store) SavePRInfo(id string, info PRInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(s.prSidecarPath(id), data, 0644)
}

// LoadPRInfo reads the PR-info sidecar, tolerating absence/corruption
// the same way LoadAgentStatus does.
func (s *Store) LoadPRInfo(id string) (PRInfo, bool) {
	var info PRInfo
	if !readSidecar(s.prSidecarPath(id), &info) {
		return PRInfo{}, false
	}
	return info, true
}

func readSidecar(path string, out any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false
	}
	return true
}
