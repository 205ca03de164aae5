package lifecycle

import (
	"time"

	"github.com/kildhq/kild/internal/agent"
	"github.com/kildhq/kild/internal/gitwt"
	"github.com/kildhq/kild/internal/kilderr"
	"github.com/kildhq/kild/internal/process"
	"github.com/kildhq/kild/internal/store"
)

// DestroyCommand describes a DestroyKild request.
type DestroyCommand struct {
	ProjectID string
	Branch    string
	Force     bool
}

// KildDestroyed is the success event for DestroyKild.
type KildDestroyed struct {
	Branch string
}

// DestroyKild tears a kild down: identity-checked kill, worktree
// removal, session + sidecar deletion, port release.
func (h *Handler) DestroyKild(cmd DestroyCommand) (KildDestroyed, error) {
	sess, err := h.Store.LoadSessionByBranch(cmd.ProjectID, cmd.Branch)
	if err != nil {
		return KildDestroyed{}, err
	}

	if !cmd.Force {
		dirty, err := gitwt.New(sess.WorktreePath).HasUncommittedChanges(sess.WorktreePath)
		if err == nil && dirty {
			return KildDestroyed{}, kilderr.ErrUncommittedChanges(cmd.Branch)
		}
	}

	if sess.Identity.PID != 0 {
		_ = process.Kill(sess.Identity.PID, sess.Identity.Name, sess.Identity.StartTime)
	}

	if err := gitwt.New(sess.WorktreePath).RemoveWorktree(sess.WorktreePath, cmd.Force); err != nil {
		if !cmd.Force {
			return KildDestroyed{}, err
		}
	}

	if err := h.Store.DeleteSession(sess.SessionID); err != nil {
		return KildDestroyed{}, err
	}
	h.Store.FreePortWindow(sess.Ports)

	return KildDestroyed{Branch: cmd.Branch}, nil
}

// OpenCommand describes an OpenKild request: a second terminal attached
// to an already-existing worktree.
type OpenCommand struct {
	ProjectID string
	Branch    string
	Agent     string
}

// KildOpened is the success event for OpenKild.
type KildOpened struct {
	Branch string
}

// OpenKild spawns a second terminal against an existing worktree and
// records it as a secondary AgentProcess on the session.
func (h *Handler) OpenKild(cmd OpenCommand) (KildOpened, error) {
	sess, err := h.Store.LoadSessionByBranch(cmd.ProjectID, cmd.Branch)
	if err != nil {
		return KildOpened{}, err
	}

	command := sess.Command
	if cmd.Agent != "" {
		def, err := agent.Parse(cmd.Agent)
		if err != nil {
			return KildOpened{}, err
		}
		c, flags := h.Config.ResolveStartupCommand(string(def.ID), def.DefaultCommand)
		command = c
		if flags != "" {
			command = c + " " + flags
		}
	}

	backend, err := h.Terminal.DetectDefault()
	if err != nil {
		return KildOpened{}, err
	}
	spawnCfg := terminalSpawnConfig(sess.WorktreePath, command, cmd.Branch)
	if err := spawnCfg.Validate(); err != nil {
		return KildOpened{}, err
	}
	if _, err := backend.Spawn(spawnCfg); err != nil {
		return KildOpened{}, kilderr.ErrSpawnFailed(err)
	}

	sess.SecondaryAgents = append(sess.SecondaryAgents, store.AgentProcess{Status: store.StatusActive})
	if err := h.Store.SaveSession(sess); err != nil {
		return KildOpened{}, err
	}

	return KildOpened{Branch: cmd.Branch}, nil
}

// StopCommand describes a StopKild request.
type StopCommand struct {
	ProjectID string
	Branch    string
}

// KildStopped is the success event for StopKild.
type KildStopped struct {
	Branch string
}

// StopKild kills the agent process (identity-checked) and marks the
// session Stopped, retaining Command so RestartKild can re-spawn it.
func (h *Handler) StopKild(cmd StopCommand) (KildStopped, error) {
	sess, err := h.Store.LoadSessionByBranch(cmd.ProjectID, cmd.Branch)
	if err != nil {
		return KildStopped{}, err
	}
	if sess.Identity.PID != 0 {
		_ = process.Kill(sess.Identity.PID, sess.Identity.Name, sess.Identity.StartTime)
	}
	sess.Status = store.StatusStopped
	sess.Identity = store.ProcessIdentity{}
	sess.WindowHandle = ""
	if err := h.Store.SaveSession(sess); err != nil {
		return KildStopped{}, err
	}
	return KildStopped{Branch: cmd.Branch}, nil
}

// RestartCommand describes a RestartKild request.
type RestartCommand struct {
	ProjectID string
	Branch    string
}

// KildRestarted is the success event for RestartKild.
type KildRestarted struct {
	Branch string
}

// RestartKild stops the kild if it's running, then spawns the
// last-known command again in the existing worktree.
func (h *Handler) RestartKild(cmd RestartCommand) (KildRestarted, error) {
	sess, err := h.Store.LoadSessionByBranch(cmd.ProjectID, cmd.Branch)
	if err != nil {
		return KildRestarted{}, err
	}
	if sess.Identity.PID != 0 && process.IsRunning(sess.Identity.PID) {
		if _, err := h.StopKild(StopCommand{ProjectID: cmd.ProjectID, Branch: cmd.Branch}); err != nil {
			return KildRestarted{}, err
		}
		sess, err = h.Store.LoadSessionByBranch(cmd.ProjectID, cmd.Branch)
		if err != nil {
			return KildRestarted{}, err
		}
	}

	backend, err := h.Terminal.DetectDefault()
	if err != nil {
		return KildRestarted{}, err
	}
	spawnCfg := terminalSpawnConfig(sess.WorktreePath, sess.Command, cmd.Branch)
	if err := spawnCfg.Validate(); err != nil {
		return KildRestarted{}, err
	}
	handle, err := backend.Spawn(spawnCfg)
	if err != nil {
		return KildRestarted{}, kilderr.ErrSpawnFailed(err)
	}

	identity := discoverIdentity(agentDefOrEmpty(sess.Agent), sess.WorktreePath, 5, time.Duration(h.Config.Terminal.SpawnDelayMs)*time.Millisecond)
	sess.Identity = identity
	sess.TerminalID = backend.ID()
	sess.WindowHandle = string(handle)
	sess.Status = store.StatusActive
	sess.LastActivity = h.now()
	if err := h.Store.SaveSession(sess); err != nil {
		return KildRestarted{}, err
	}

	return KildRestarted{Branch: cmd.Branch}, nil
}
