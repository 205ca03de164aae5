package gitwt

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kildhq/kild/internal/kilderr"
)

// WorktreeInfo describes a created worktree.
type WorktreeInfo struct {
	Path      string `json:"path"`
	Branch    string `json:"branch"`
	ProjectID string `json:"project_id"`
}

// WorktreePath computes the canonical location for a project/branch
// worktree, matching the data-model invariant
// "base_dir/worktrees/<project_name>/<branch>".
func WorktreePath(baseDir, projectName, branch string) string {
	return filepath.Join(baseDir, "worktrees", projectName, branch)
}

// CreateWorktree validates branch, computes its path under base, and
// adds a git worktree there — creating the branch from current HEAD
// first when it doesn't exist locally yet.
func (g *Git) CreateWorktree(baseDir, projectName, branch string) (WorktreeInfo, error) {
	if err := ValidateBranchName(branch); err != nil {
		return WorktreeInfo{}, err
	}
	path := WorktreePath(baseDir, projectName, branch)
	if _, err := os.Stat(path); err == nil {
		return WorktreeInfo{}, kilderr.ErrWorktreeAlreadyExists(path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return WorktreeInfo{}, kilderr.ErrInvalidPath(filepath.Dir(path))
	}

	if !g.LocalBranchExists(branch) {
		if _, err := g.run("branch", branch); err != nil {
			return WorktreeInfo{}, kilderr.Newf(kilderr.BranchAlreadyExists, err, "failed to create branch %q", branch)
		}
	}

	if _, err := g.run("worktree", "add", path, branch); err != nil {
		return WorktreeInfo{}, kilderr.Newf(kilderr.WorktreeRemovalFailed, err, "failed to add worktree at %s", path)
	}

	project, err := DetectProject(g.Dir)
	projectID := ""
	if err == nil {
		projectID = project.ID
	}
	return WorktreeInfo{Path: path, Branch: branch, ProjectID: projectID}, nil
}

// RemoveWorktree locates the worktree registered at path, prunes its
// git metadata, and deletes the directory tree if anything remains.
// Unless force is set, git itself refuses removal when the worktree
// has local changes.
func (g *Git) RemoveWorktree(path string, force bool) error {
	worktrees, err := g.listWorktreePaths()
	if err != nil {
		return kilderr.ErrWorktreeRemovalFailed(path, err)
	}
	found := false
	for _, wt := range worktrees {
		if wt == path {
			found = true
			break
		}
	}
	if !found {
		return kilderr.ErrWorktreeNotFound(path)
	}

	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)
	if _, err := g.run(args...); err != nil {
		return kilderr.ErrWorktreeRemovalFailed(path, err)
	}

	if _, err := os.Stat(path); err == nil {
		if err := os.RemoveAll(path); err != nil {
			return kilderr.ErrWorktreeRemovalFailed(path, err)
		}
	}
	if _, err := g.run("worktree", "prune"); err != nil {
		return kilderr.ErrWorktreeRemovalFailed(path, err)
	}
	return nil
}

func (g *Git) listWorktreePaths() ([]string, error) {
	out, err := g.run("worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "worktree ") {
			paths = append(paths, strings.TrimPrefix(line, "worktree "))
		}
	}
	return paths, nil
}

// ListWorktrees returns the absolute paths of every worktree registered
// against the repository rooted at g.Dir.
func (g *Git) ListWorktrees() ([]string, error) {
	return g.listWorktreePaths()
}

// WorktreeBranch is one entry from `git worktree list --porcelain`,
// pairing a worktree's path with the branch checked out in it.
type WorktreeBranch struct {
	Path   string
	Branch string
}

// ListWorktreeBranches returns each registered worktree's path and
// checked-out branch, which the cleanup engine's orphan scan needs since
// branch names may themselves contain "/" and can't be recovered from
// the last path segment alone.
func (g *Git) ListWorktreeBranches() ([]WorktreeBranch, error) {
	out, err := g.run("worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}
	var result []WorktreeBranch
	var cur WorktreeBranch
	flush := func() {
		if cur.Path != "" {
			result = append(result, cur)
		}
		cur = WorktreeBranch{}
	}
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "worktree "):
			flush()
			cur.Path = strings.TrimPrefix(line, "worktree ")
		case strings.HasPrefix(line, "branch "):
			cur.Branch = strings.TrimPrefix(strings.TrimPrefix(line, "branch "), "refs/heads/")
		}
	}
	flush()
	return result, nil
}

// HasUncommittedChanges reports whether the worktree at path has any
// staged or unstaged changes relative to its index.
func (g *Git) HasUncommittedChanges(path string) (bool, error) {
	wt := New(path)
	out, err := wt.run("status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}
