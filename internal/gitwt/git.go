// Package gitwt wraps git(1) subprocess invocations for worktree
// lifecycle management: project detection, worktree create/remove,
// diff stats, overlap detection, fetch and rebase. Each subprocess
// buffers stdout and stderr; on failure the returned error carries the
// git arguments and git's trimmed stderr text.
package gitwt

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Git wraps git operations rooted at Dir, a working directory inside
// (or at) the repository being operated on.
type Git struct {
	Dir string
}

// New returns a Git wrapper rooted at dir.
func New(dir string) *Git {
	return &Git{Dir: dir}
}

// run executes `git <args>` with Dir as cwd and returns trimmed stdout.
func (g *Git) run(args ...string) (string, error) {
	return g.runIn(g.Dir, args...)
}

// Run exposes the raw git subprocess wrapper to callers outside this
// package (the cleanup engine's orphan scan) that need git plumbing
// beyond the convenience methods below.
func (g *Git) Run(args ...string) (string, error) {
	return g.run(args...)
}

func (g *Git) runIn(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		if stderrStr != "" {
			return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), stderrStr)
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// IsRepo reports whether Dir is inside a git working tree.
func (g *Git) IsRepo() bool {
	out, err := g.run("rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// RepoRoot returns the top-level directory of the repository containing
// Dir, walking upward the same way `git rev-parse --show-toplevel` does
// internally.
func (g *Git) RepoRoot() (string, error) {
	return g.run("rev-parse", "--show-toplevel")
}

// CurrentBranch returns the checked-out branch name, or "" in detached
// HEAD state.
func (g *Git) CurrentBranch() (string, error) {
	out, err := g.run("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	if out == "HEAD" {
		return "", nil
	}
	return out, nil
}

// RemoteURL returns the URL configured for the given remote, or "" if
// the remote does not exist.
func (g *Git) RemoteURL(remote string) string {
	out, err := g.run("remote", "get-url", remote)
	if err != nil {
		return ""
	}
	return out
}

// LocalBranchExists reports whether name is a local branch.
func (g *Git) LocalBranchExists(name string) bool {
	_, err := g.run("show-ref", "--verify", "--quiet", "refs/heads/"+name)
	return err == nil
}
