// Package lifecycle is the control-plane handler: one method per
// command, each returning a typed event on success or a typed
// kilderr.Error on failure. Commands are plain structs so the CLI and a
// future GUI can serialize them across a process boundary identically.
package lifecycle

import (
	"time"

	"github.com/kildhq/kild/internal/agent"
	"github.com/kildhq/kild/internal/config"
	"github.com/kildhq/kild/internal/gitwt"
	"github.com/kildhq/kild/internal/kilderr"
	"github.com/kildhq/kild/internal/notify"
	"github.com/kildhq/kild/internal/process"
	"github.com/kildhq/kild/internal/store"
	"github.com/kildhq/kild/internal/terminal"
)

// Handler owns every subsystem a lifecycle command needs to reach.
type Handler struct {
	Store    *store.Store
	Config   config.Config
	Terminal *terminal.Registry
	Notify   *notify.Manager

	// now is swappable in tests so timestamps are deterministic.
	now func() time.Time
}

// NewHandler builds a Handler over the given store and resolved config.
func NewHandler(s *store.Store, cfg config.Config) *Handler {
	return &Handler{
		Store:    s,
		Config:   cfg,
		Terminal: terminal.NewRegistry(),
		Notify:   notify.NewManager(s.BaseDir+"/notifications", 10*time.Minute),
		now:      time.Now,
	}
}

// CreateCommand describes a CreateKild request.
type CreateCommand struct {
	Branch      string
	Agent       string // optional; empty means "resolve from config default"
	Note        string
	ProjectPath string // optional; empty means "detect from cwd"
	TerminalID  string // optional; empty means "config preferred, else detect default"
}

// KildCreated is the success event for CreateKild.
type KildCreated struct {
	Branch    string
	SessionID string
}

// CreateKild implements spec §4.F's eleven-step sequence, reversing
// every already-completed step (kill spawned process, remove worktree,
// free ports) if a later step fails.
func (h *Handler) CreateKild(cmd CreateCommand) (KildCreated, error) {
	// (1) detect_project
	project, err := gitwt.DetectProject(cmd.ProjectPath)
	if err != nil {
		return KildCreated{}, err
	}

	// (2) resolve agent
	agentID := cmd.Agent
	if agentID == "" {
		agentID = h.Config.Agent.Default
	}
	def, err := agent.Parse(agentID)
	if err != nil {
		return KildCreated{}, err
	}

	// (3) resolve startup command + flags
	command, flags := h.Config.ResolveStartupCommand(string(def.ID), def.DefaultCommand)
	fullCommand := command
	if flags != "" {
		fullCommand = command + " " + flags
	}

	// (4) reject duplicate (project, branch)
	if _, err := h.Store.LoadSessionByBranch(project.ID, cmd.Branch); err == nil {
		return KildCreated{}, kilderr.ErrSessionAlreadyExists(cmd.Branch)
	}

	// (5) allocate port window
	ports, err := h.Store.AllocatePortWindow(project.ID, 10, store.DefaultPortBase, store.DefaultPortMax)
	if err != nil {
		return KildCreated{}, err
	}

	// (6) create_worktree
	g := gitwt.New(project.Path)
	wt, err := g.CreateWorktree(h.Store.BaseDir, project.Name, cmd.Branch)
	if err != nil {
		return KildCreated{}, err
	}
	cleanupWorktree := func() { _ = g.RemoveWorktree(wt.Path, true) }

	if h.Config.IncludePatterns.Enabled {
		h.Config.IncludePatterns.SeedIncludedFiles(project.Path, wt.Path)
	}

	// (7) choose terminal
	var backend terminal.Backend
	switch {
	case cmd.TerminalID != "":
		backend, err = h.Terminal.Get(cmd.TerminalID)
	case h.Config.Terminal.Preferred != "":
		backend, err = h.Terminal.Get(h.Config.Terminal.Preferred)
	default:
		backend, err = h.Terminal.DetectDefault()
	}
	if err != nil {
		cleanupWorktree()
		return KildCreated{}, err
	}

	// (8) spawn_terminal
	spawnCfg := terminal.SpawnConfig{WorkDir: wt.Path, Command: fullCommand, Title: cmd.Branch}
	if err := spawnCfg.Validate(); err != nil {
		cleanupWorktree()
		return KildCreated{}, err
	}
	handle, err := backend.Spawn(spawnCfg)
	if err != nil {
		cleanupWorktree()
		return KildCreated{}, kilderr.ErrSpawnFailed(err)
	}
	cleanupSpawn := func() { _ = backend.Close(handle) }

	// (9) discover pid
	delay := time.Duration(h.Config.Terminal.SpawnDelayMs) * time.Millisecond
	if delay <= 0 {
		delay = time.Second
	}
	time.Sleep(delay)
	identity := discoverIdentity(def, wt.Path, 5, delay)

	// (10) write session record
	sess := store.Session{
		SessionID:    store.NewSessionID(),
		ProjectID:    project.ID,
		Branch:       cmd.Branch,
		Agent:        string(def.ID),
		Status:       store.StatusActive,
		CreatedAt:    h.now(),
		WorktreePath: wt.Path,
		Ports:        ports,
		Identity:     identity,
		Command:      fullCommand,
		TerminalID:   backend.ID(),
		WindowHandle: string(handle),
		LastActivity: h.now(),
		Note:         cmd.Note,
	}
	if err := h.Store.SaveSession(sess); err != nil {
		cleanupSpawn()
		cleanupWorktree()
		return KildCreated{}, err
	}

	return KildCreated{Branch: cmd.Branch, SessionID: sess.SessionID}, nil
}

// discoverIdentity polls up to attempts times for the spawned agent's
// pid, first via process.FindByName (the pid-file path is populated by
// the shim binary once it starts, which this handler doesn't wait on
// directly) falling back to an empty identity if nothing is found —
// CreateKild still succeeds, since a terminal with no discoverable pid
// is a degraded-but-valid state (health reports it Crashed).
func discoverIdentity(def agent.Definition, _ string, attempts int, interval time.Duration) store.ProcessIdentity {
	for i := 0; i < attempts; i++ {
		pids, err := process.FindByName(def.ProcessPatterns)
		if err == nil && len(pids) > 0 {
			info := process.CaptureIdentity(pids[0])
			return store.ProcessIdentity{PID: info.PID, Name: info.Name, StartTime: info.StartTime}
		}
		time.Sleep(interval)
	}
	return store.ProcessIdentity{}
}
