package lifecycle

import (
	"github.com/kildhq/kild/internal/forge"
	"github.com/kildhq/kild/internal/gitwt"
	"github.com/kildhq/kild/internal/kilderr"
	"github.com/kildhq/kild/internal/notify"
	"github.com/kildhq/kild/internal/store"
)

// CompleteCommand describes a CompleteKild request.
type CompleteCommand struct {
	ProjectID  string
	Branch     string
	BaseBranch string
	PRListURL  string // forge's PR-list page; empty means "no remote configured"
	Browser    *forge.Browser
}

// KildCompleted is the success event for CompleteKild.
type KildCompleted struct {
	Branch     string
	PRMerged   bool
	BranchLeft bool // true when the kild was only destroyed, no PR involved
}

// CompleteKild refuses on a dirty worktree, otherwise checks for a
// merged PR (when a forge is configured) and always destroys the kild
// once it's safe to.
func (h *Handler) CompleteKild(cmd CompleteCommand) (KildCompleted, error) {
	sess, err := h.Store.LoadSessionByBranch(cmd.ProjectID, cmd.Branch)
	if err != nil {
		return KildCompleted{}, err
	}

	dirty, err := gitwt.New(sess.WorktreePath).HasUncommittedChanges(sess.WorktreePath)
	if err == nil && dirty {
		return KildCompleted{}, kilderr.ErrUncommittedChanges(cmd.Branch)
	}

	merged := false
	if cmd.PRListURL != "" && cmd.Browser != nil {
		if info, found, err := cmd.Browser.LookupPR(cmd.PRListURL, cmd.Branch); err == nil && found {
			_ = h.Store.SavePRInfo(sess.SessionID, info)
			merged = forge.IsMerged(info)
		}
	}

	if _, err := h.DestroyKild(DestroyCommand{ProjectID: cmd.ProjectID, Branch: cmd.Branch, Force: false}); err != nil {
		return KildCompleted{}, err
	}

	return KildCompleted{Branch: cmd.Branch, PRMerged: merged, BranchLeft: cmd.PRListURL == ""}, nil
}

// UpdateAgentStatusCommand describes an UpdateAgentStatus request.
type UpdateAgentStatusCommand struct {
	ProjectID string
	Branch    string
	Status    store.AgentStatus
	Notify    bool
}

// UpdateAgentStatus writes the agent-status sidecar, heartbeats the
// session's last_activity, and fires a best-effort desktop notification
// when the agent is Waiting or Error and notification was requested.
// It emits no typed Event — a sidecar change is not lifecycle state.
func (h *Handler) UpdateAgentStatus(cmd UpdateAgentStatusCommand) error {
	sess, err := h.Store.LoadSessionByBranch(cmd.ProjectID, cmd.Branch)
	if err != nil {
		return err
	}

	now := h.now()
	if err := h.Store.SaveAgentStatus(sess.SessionID, store.AgentStatusInfo{Status: cmd.Status, UpdatedAt: now}); err != nil {
		return err
	}
	sess.LastActivity = now
	if err := h.Store.SaveSession(sess); err != nil {
		return err
	}

	if cmd.Notify && (cmd.Status == store.AgentWaiting || cmd.Status == store.AgentError) {
		message := notify.NeedsInputMessage(sess.Agent, sess.Branch, string(cmd.Status))
		_, _ = h.Notify.SendIfReady(sess.SessionID, "needs-input", message)
	}
	return nil
}

// SyncCommand describes a SyncKild/RebaseKild request: fetch remote,
// rebase the worktree onto base, surfacing conflicts as data rather
// than an error.
type SyncCommand struct {
	ProjectID  string
	Branch     string
	Remote     string
	BaseBranch string
}

// KildSynced is the success event for SyncKild/RebaseKild.
type KildSynced struct {
	Branch string
	Result gitwt.RebaseResult
}

// SyncKild fetches Remote then rebases the worktree onto BaseBranch.
func (h *Handler) SyncKild(cmd SyncCommand) (KildSynced, error) {
	sess, err := h.Store.LoadSessionByBranch(cmd.ProjectID, cmd.Branch)
	if err != nil {
		return KildSynced{}, err
	}
	if err := gitwt.FetchRemote(sess.WorktreePath, cmd.Remote); err != nil {
		return KildSynced{}, err
	}
	result, err := gitwt.RebaseWorktree(sess.WorktreePath, cmd.BaseBranch)
	if err != nil {
		return KildSynced{}, err
	}
	return KildSynced{Branch: cmd.Branch, Result: result}, nil
}
