package lifecycle

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/kildhq/kild/internal/config"
	"github.com/kildhq/kild/internal/store"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	run("init", "-q", "-b", "main")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "Test")
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello\n"), 0644); err != nil {
		t.Fatal(err)
	}
	run("add", "README.md")
	run("commit", "-q", "-m", "initial")
	return dir
}

func newTestHandler(t *testing.T) (*Handler, string) {
	t.Helper()
	repoDir := initRepo(t)
	baseDir := t.TempDir()
	s := store.New(baseDir)
	cfg := config.Defaults(baseDir)
	cfg.Terminal.SpawnDelayMs = 1
	h := NewHandler(s, cfg)
	return h, repoDir
}

func TestCreateAndDestroyKild(t *testing.T) {
	h, repoDir := newTestHandler(t)

	created, err := h.CreateKild(CreateCommand{
		Branch:      "feat/auth",
		Agent:       "claude",
		ProjectPath: repoDir,
		TerminalID:  "embedded-pty",
	})
	if err != nil {
		t.Fatalf("CreateKild: %v", err)
	}
	if created.Branch != "feat/auth" || created.SessionID == "" {
		t.Fatalf("unexpected event: %+v", created)
	}

	sess, err := h.Store.LoadSession(created.SessionID)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if sess.Status != store.StatusActive {
		t.Fatalf("status = %v, want Active", sess.Status)
	}
	if _, err := os.Stat(sess.WorktreePath); err != nil {
		t.Fatalf("worktree missing: %v", err)
	}

	time.Sleep(50 * time.Millisecond) // let the spawned shell settle

	destroyed, err := h.DestroyKild(DestroyCommand{ProjectID: sess.ProjectID, Branch: "feat/auth", Force: true})
	if err != nil {
		t.Fatalf("DestroyKild: %v", err)
	}
	if destroyed.Branch != "feat/auth" {
		t.Fatalf("unexpected event: %+v", destroyed)
	}
	if _, err := h.Store.LoadSession(created.SessionID); err == nil {
		t.Fatal("expected session record removed after destroy")
	}
	if _, err := os.Stat(sess.WorktreePath); !os.IsNotExist(err) {
		t.Fatalf("expected worktree removed, stat err=%v", err)
	}
}

func TestCreateKildRejectsDuplicateBranch(t *testing.T) {
	h, repoDir := newTestHandler(t)
	cmd := CreateCommand{Branch: "feat/dup", Agent: "claude", ProjectPath: repoDir, TerminalID: "embedded-pty"}

	if _, err := h.CreateKild(cmd); err != nil {
		t.Fatalf("first CreateKild: %v", err)
	}
	if _, err := h.CreateKild(cmd); err == nil {
		t.Fatal("expected SessionAlreadyExists on duplicate create")
	}
}

func TestCreateKildInvalidAgent(t *testing.T) {
	h, repoDir := newTestHandler(t)
	_, err := h.CreateKild(CreateCommand{Branch: "feat/x", Agent: "not-an-agent", ProjectPath: repoDir, TerminalID: "embedded-pty"})
	if err == nil {
		t.Fatal("expected InvalidAgent error")
	}
}

func TestUpdateAgentStatusHeartbeats(t *testing.T) {
	h, repoDir := newTestHandler(t)
	created, err := h.CreateKild(CreateCommand{Branch: "feat/status", Agent: "claude", ProjectPath: repoDir, TerminalID: "embedded-pty"})
	if err != nil {
		t.Fatalf("CreateKild: %v", err)
	}
	sess, _ := h.Store.LoadSession(created.SessionID)

	before := sess.LastActivity
	time.Sleep(5 * time.Millisecond)
	if err := h.UpdateAgentStatus(UpdateAgentStatusCommand{ProjectID: sess.ProjectID, Branch: "feat/status", Status: store.AgentWaiting}); err != nil {
		t.Fatalf("UpdateAgentStatus: %v", err)
	}

	after, _ := h.Store.LoadSession(created.SessionID)
	if !after.LastActivity.After(before) {
		t.Fatalf("expected last_activity to advance, before=%v after=%v", before, after.LastActivity)
	}
	status, ok := h.Store.LoadAgentStatus(created.SessionID)
	if !ok || status.Status != store.AgentWaiting {
		t.Fatalf("agent status = %+v, ok=%v", status, ok)
	}
}
