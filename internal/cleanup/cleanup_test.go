package cleanup

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/kildhq/kild/internal/gitwt"
	"github.com/kildhq/kild/internal/store"
)

func initRepo(t *testing.T, dir string) *gitwt.Git {
	t.Helper()
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
	return gitwt.New(dir)
}

func TestScanFindsOrphanedBranch(t *testing.T) {
	repoDir := t.TempDir()
	g := initRepo(t, repoDir)
	if _, err := g.Run("branch", "kild/orphan-branch"); err != nil {
		t.Fatal(err)
	}

	orphans, err := Scan(g, "proj1", nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	found := false
	for _, o := range orphans {
		if o.Type == ResourceBranch && o.Ref == "kild/orphan-branch" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected orphaned branch in %+v", orphans)
	}
}

func TestScanFindsOrphanedWorktree(t *testing.T) {
	repoDir := t.TempDir()
	g := initRepo(t, repoDir)
	base := t.TempDir()
	info, err := g.CreateWorktree(base, "repo", "kild/feat-a")
	if err != nil {
		t.Fatal(err)
	}

	orphans, err := Scan(g, "proj1", nil)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, o := range orphans {
		if o.Type == ResourceWorktree && o.Ref == info.Path {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected orphaned worktree in %+v", orphans)
	}
}

func TestScanNoOrphansWithMatchingSession(t *testing.T) {
	repoDir := t.TempDir()
	g := initRepo(t, repoDir)
	base := t.TempDir()
	info, err := g.CreateWorktree(base, "repo", "kild/feat-b")
	if err != nil {
		t.Fatal(err)
	}

	sessions := []store.Session{{
		SessionID:    "s1",
		ProjectID:    "proj1",
		Branch:       "kild/feat-b",
		Status:       store.StatusActive,
		WorktreePath: info.Path,
	}}

	orphans, err := Scan(g, "proj1", sessions)
	if err != nil {
		t.Fatal(err)
	}
	if len(orphans) != 0 {
		t.Fatalf("expected no orphans, got %+v", orphans)
	}
}

func TestScanSessionMissingWorktree(t *testing.T) {
	repoDir := t.TempDir()
	g := initRepo(t, repoDir)

	sessions := []store.Session{{
		SessionID:    "s1",
		ProjectID:    "proj1",
		Branch:       "kild/gone",
		Status:       store.StatusActive,
		WorktreePath: "/does/not/exist",
	}}
	orphans, err := Scan(g, "proj1", sessions)
	if err != nil {
		t.Fatal(err)
	}
	if len(orphans) != 1 || orphans[0].Type != ResourceSession {
		t.Fatalf("expected one session orphan, got %+v", orphans)
	}
}

func TestRunDryRunDoesNotRemove(t *testing.T) {
	orphans := []Orphan{{Type: ResourceBranch, Ref: "kild/x", Reason: "no worktree or session"}}
	called := false
	summary := Run(orphans, DryRun, func(Orphan) error {
		called = true
		return nil
	})
	if called {
		t.Fatal("DryRun must not invoke the remover")
	}
	if summary.Total != 1 || summary.Succeeded != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunAggressiveIsolatesFailures(t *testing.T) {
	orphans := []Orphan{
		{Type: ResourceBranch, Ref: "a", Reason: "r"},
		{Type: ResourceBranch, Ref: "b", Reason: "r"},
	}
	summary := Run(orphans, Aggressive, func(o Orphan) error {
		if o.Ref == "a" {
			return os.ErrInvalid
		}
		return nil
	})
	if summary.Succeeded != 1 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Failures["a"] == "" {
		t.Fatal("expected failure recorded for a")
	}
}
