package store

import (
	"time"

	"github.com/kildhq/kild/internal/kilderr"
)

// Status is the closed set of a kild's lifecycle states.
type Status string

const (
	StatusActive    Status = "active"
	StatusStopped   Status = "stopped"
	StatusDestroyed Status = "destroyed"
)

// AgentStatus is the closed set the agent itself reports via the
// agent-status poke.
type AgentStatus string

const (
	AgentWorking AgentStatus = "working"
	AgentIdle    AgentStatus = "idle"
	AgentWaiting AgentStatus = "waiting"
	AgentDone    AgentStatus = "done"
	AgentError   AgentStatus = "error"
)

// ProcessIdentity is the (pid, name, start-time) tuple recorded for a
// spawned process. All three are present together or all absent.
type ProcessIdentity struct {
	PID       int    `json:"pid,omitempty"`
	Name      string `json:"process_name,omitempty"`
	StartTime string `json:"process_start_time,omitempty"`
}

// AgentProcess is a secondary agent terminal attached to a workspace
// (opened via OpenKild), tracked independently of the primary process.
type AgentProcess struct {
	Identity ProcessIdentity `json:"identity"`
	Status   Status          `json:"status"`
}

// PortRange is a contiguous reserved window of TCP ports.
type PortRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
	Count int `json:"count"`
}

// Session is one record per workspace ("kild").
type Session struct {
	SessionID     string          `json:"session_id"`
	ProjectID     string          `json:"project_id"`
	Branch        string          `json:"branch"`
	Agent         string          `json:"agent"`
	Status        Status          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	WorktreePath  string          `json:"worktree_path"`
	Ports         PortRange       `json:"port_range"`
	Identity      ProcessIdentity `json:"process_identity"`
	Command       string          `json:"command"`
	TerminalID    string          `json:"terminal_id,omitempty"`
	WindowHandle  string          `json:"window_handle,omitempty"`
	LastActivity  time.Time       `json:"last_activity"`
	Note          string          `json:"note,omitempty"`
	SecondaryAgents []AgentProcess `json:"secondary_agents,omitempty"`
}

// Validate enforces the process-identity invariant: name and start-time
// are either both present alongside pid, or all three are absent.
func (s Session) Validate() error {
	return s.Identity.validate()
}

func (id ProcessIdentity) validate() error {
	if id.PID == 0 {
		if id.Name != "" || id.StartTime != "" {
			return kilderr.ErrInvalidProcessMetadata()
		}
		return nil
	}
	if id.Name == "" || id.StartTime == "" {
		return kilderr.ErrInvalidProcessMetadata()
	}
	return nil
}

// AgentStatusInfo is the agent-status sidecar: written by the agent
// itself via a poke command, read by the health reconciler.
type AgentStatusInfo struct {
	Status    AgentStatus `json:"status"`
	UpdatedAt time.Time   `json:"updated_at"`
	// FromUser carries the "last message was from the user" signal the
	// Stuck classification needs. The protocol has no producer for this
	// field yet — it is always false until a future extension sources
	// it from the agent CLI's own event stream.
	FromUser bool `json:"from_user"`
}

// PRInfo is the pull-request sidecar, the result of querying a hosted
// forge for the branch's PR.
type PRInfo struct {
	Number        int       `json:"number"`
	URL           string    `json:"url"`
	State         string    `json:"state"`
	CISummary     string    `json:"ci_summary,omitempty"`
	ReviewSummary string    `json:"review_summary,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Project is a stable identifier for an enlisted git repository.
type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	RemoteURL string `json:"remote_url,omitempty"`
}

// ProjectsData is the process-wide project registry, a single file.
type ProjectsData struct {
	Projects []Project `json:"projects"`
	Active   string    `json:"active,omitempty"`
}
