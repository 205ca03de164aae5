package gitwt

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kildhq/kild/internal/kilderr"
)

// ProjectInfo identifies a git repository the user has enlisted.
type ProjectInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	RemoteURL string `json:"remote_url,omitempty"`
}

// DetectProject walks upward from dir (or the process cwd when dir is
// empty) to find the repository root, then derives a display name and
// a stable id from it.
func DetectProject(dir string) (ProjectInfo, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return ProjectInfo{}, kilderr.New(kilderr.NotInRepository, "cannot determine working directory", err)
		}
		dir = cwd
	}
	g := New(dir)
	if !g.IsRepo() {
		return ProjectInfo{}, kilderr.ErrNotInRepository()
	}
	root, err := g.RepoRoot()
	if err != nil {
		return ProjectInfo{}, kilderr.ErrNotInRepository()
	}
	canonical, err := filepath.EvalSymlinks(root)
	if err != nil {
		canonical = root
	}
	remote := g.RemoteURL("origin")
	name := deriveProjectNameFromPath(canonical)
	if remote != "" {
		if fromRemote := deriveProjectNameFromRemote(remote); fromRemote != "" {
			name = fromRemote
		}
	}
	return ProjectInfo{
		ID:        generateProjectID(canonical),
		Name:      name,
		Path:      canonical,
		RemoteURL: remote,
	}, nil
}

func deriveProjectNameFromPath(path string) string {
	return filepath.Base(strings.TrimRight(path, "/"))
}

var sshRemoteRe = regexp.MustCompile(`^[\w.\-]+@[\w.\-]+:(.+)$`)

// deriveProjectNameFromRemote extracts a repository basename from
// either form of remote URL:
//
//	https://host/user/repo.git  -> repo
//	git@host:user/repo.git      -> repo
func deriveProjectNameFromRemote(remote string) string {
	remote = strings.TrimSpace(remote)
	var tail string
	if m := sshRemoteRe.FindStringSubmatch(remote); m != nil {
		tail = m[1]
	} else {
		tail = remote
	}
	tail = strings.TrimSuffix(tail, "/")
	tail = strings.TrimSuffix(tail, ".git")
	parts := strings.Split(tail, "/")
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// generateProjectID derives a stable, deterministic id from a canonical
// path — the same path always yields the same id, independent of
// process or host.
func generateProjectID(canonicalPath string) string {
	sum := sha256.Sum256([]byte(canonicalPath))
	return hex.EncodeToString(sum[:])[:16]
}

// IsValidGitDirectory reports whether path exists, is a directory, and
// is (or is inside) a git working tree.
func IsValidGitDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	return New(path).IsRepo()
}

var invalidBranchChars = regexp.MustCompile(`[\s]`)

// ValidateBranchName rejects empty (after trim), ".." components,
// leading "-", and any whitespace (space, tab, newline).
func ValidateBranchName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return kilderr.ErrInvalidSessionName()
	}
	if strings.Contains(name, "..") {
		return kilderr.Newf(kilderr.InvalidName, nil, "invalid branch name %q: must not contain '..'", name)
	}
	if strings.HasPrefix(name, "-") {
		return kilderr.Newf(kilderr.InvalidName, nil, "invalid branch name %q: must not start with '-'", name)
	}
	if invalidBranchChars.MatchString(name) {
		return kilderr.Newf(kilderr.InvalidName, nil, "invalid branch name %q: must not contain whitespace", name)
	}
	return nil
}

// ShouldUseCurrentBranch reports whether the currently checked-out
// branch in dir already matches the requested branch name, meaning no
// new branch needs to be created off HEAD.
func ShouldUseCurrentBranch(dir, branch string) bool {
	current, err := New(dir).CurrentBranch()
	return err == nil && current != "" && current == branch
}
