package gitwt

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func initRepo(t *testing.T, dir string) *Git {
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
	return New(dir)
}

func TestValidateBranchName(t *testing.T) {
	valid := []string{"feat/x", "v1.2.3", "issue-33"}
	invalid := []string{"", "  ", "..", "-x", "a b", "a\tb", "a\nb"}
	for _, name := range valid {
		if err := ValidateBranchName(name); err != nil {
			t.Errorf("expected %q valid, got %v", name, err)
		}
	}
	for _, name := range invalid {
		if err := ValidateBranchName(name); err == nil {
			t.Errorf("expected %q invalid", name)
		}
	}
}

func TestDeriveProjectNameFromRemote(t *testing.T) {
	cases := map[string]string{
		"https://github.com/user/repo.git": "repo",
		"git@github.com:user/repo.git":     "repo",
		"https://github.com/user/repo":     "repo",
	}
	for remote, want := range cases {
		if got := deriveProjectNameFromRemote(remote); got != want {
			t.Errorf("deriveProjectNameFromRemote(%q) = %q, want %q", remote, got, want)
		}
	}
}

func TestCreateAndRemoveWorktree(t *testing.T) {
	repoDir := t.TempDir()
	g := initRepo(t, repoDir)

	base := t.TempDir()
	info, err := g.CreateWorktree(base, "repo", "feat/auth")
	if err != nil {
		t.Fatalf("CreateWorktree: %v", err)
	}
	wantPath := WorktreePath(base, "repo", "feat/auth")
	if info.Path != wantPath {
		t.Errorf("path = %q, want %q", info.Path, wantPath)
	}
	if _, err := os.Stat(info.Path); err != nil {
		t.Fatalf("worktree directory missing: %v", err)
	}

	if _, err := g.CreateWorktree(base, "repo", "feat/auth"); err == nil {
		t.Fatal("expected WorktreeAlreadyExists on duplicate create")
	}

	if err := g.RemoveWorktree(info.Path, false); err != nil {
		t.Fatalf("RemoveWorktree: %v", err)
	}
	if _, err := os.Stat(info.Path); !os.IsNotExist(err) {
		t.Fatalf("expected worktree directory removed, stat err=%v", err)
	}
}

func TestDiffStats(t *testing.T) {
	repoDir := t.TempDir()
	initRepo(t, repoDir)
	if err := os.WriteFile(filepath.Join(repoDir, "README.md"), []byte("hello\nworld\n"), 0644); err != nil {
		t.Fatal(err)
	}
	stats, err := DiffStatsFor(repoDir)
	if err != nil {
		t.Fatalf("DiffStatsFor: %v", err)
	}
	if !stats.HasChanges() || stats.FilesChanged != 1 {
		t.Fatalf("stats = %+v, want one changed file", stats)
	}
}
