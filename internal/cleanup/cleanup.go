// Package cleanup cross-references git branches, git worktrees, and
// session records to find orphaned resources and remove them under a
// chosen strategy.
package cleanup

import (
	"strings"

	"github.com/kildhq/kild/internal/gitwt"
	"github.com/kildhq/kild/internal/store"
)

// ResourceType names which of the three sources of truth an orphan was
// found missing from.
type ResourceType string

const (
	ResourceSession   ResourceType = "session"
	ResourceWorktree  ResourceType = "worktree"
	ResourceBranch    ResourceType = "branch"
)

// Orphan is a single resource with no matching counterpart among the
// other two sources of truth.
type Orphan struct {
	Type   ResourceType `json:"type"`
	Ref    string       `json:"ref"` // session id, worktree path, or branch name
	Reason string       `json:"reason"`
}

// Strategy selects how aggressively cleanup_all removes orphans.
type Strategy string

const (
	DryRun     Strategy = "dry_run"
	Safe       Strategy = "safe"
	Aggressive Strategy = "aggressive"
)

// branchPrefix is the naming convention kild branches use; scan_for_orphans
// only considers branches under this prefix part of its universe.
const branchPrefix = "kild/"

// Scan inspects the three sources of truth for projectID in the
// repository at g.Dir and returns every orphan found.
func Scan(g *gitwt.Git, projectID string, sessions []store.Session) ([]Orphan, error) {
	branches, err := listKildBranches(g)
	if err != nil {
		return nil, err
	}
	worktrees, err := g.ListWorktreeBranches()
	if err != nil {
		return nil, err
	}

	sessByBranch := map[string]store.Session{}
	sessByWorktree := map[string]store.Session{}
	for _, s := range sessions {
		if s.ProjectID != projectID || s.Status == store.StatusDestroyed {
			continue
		}
		sessByBranch[s.Branch] = s
		sessByWorktree[s.WorktreePath] = s
	}

	worktreePathSet := map[string]bool{}
	for _, wt := range worktrees {
		worktreePathSet[wt.Path] = true
	}
	branchSet := map[string]bool{}
	for _, b := range branches {
		branchSet[b] = true
	}

	var orphans []Orphan

	// (i) session records whose worktree directory is missing.
	for _, s := range sessions {
		if s.ProjectID != projectID || s.Status == store.StatusDestroyed {
			continue
		}
		if !worktreePathSet[s.WorktreePath] {
			orphans = append(orphans, Orphan{Type: ResourceSession, Ref: s.SessionID, Reason: "worktree directory missing: " + s.WorktreePath})
		}
	}

	// (ii) worktrees whose branch no longer exists or whose session
	// record is missing. The first entry git lists is the main worktree
	// (the repository itself), which no kild owns, so it is skipped.
	for i, wt := range worktrees {
		if i == 0 {
			continue
		}
		if _, ok := sessByWorktree[wt.Path]; !ok {
			orphans = append(orphans, Orphan{Type: ResourceWorktree, Ref: wt.Path, Reason: "no session record references this worktree"})
			continue
		}
		if wt.Branch != "" && !branchSet[wt.Branch] {
			orphans = append(orphans, Orphan{Type: ResourceWorktree, Ref: wt.Path, Reason: "branch no longer exists: " + wt.Branch})
		}
	}

	// (iii) branches without worktree or session.
	for _, b := range branches {
		if _, ok := sessByBranch[b]; ok {
			continue
		}
		hasWorktree := false
		for _, wt := range worktrees {
			if wt.Branch == b {
				hasWorktree = true
				break
			}
		}
		if !hasWorktree {
			orphans = append(orphans, Orphan{Type: ResourceBranch, Ref: b, Reason: "no worktree or session references this branch"})
		}
	}

	return orphans, nil
}

func listKildBranches(g *gitwt.Git) ([]string, error) {
	out, err := g.Run("branch", "--list", branchPrefix+"*", "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}
	var branches []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			branches = append(branches, line)
		}
	}
	return branches, nil
}

// Summary is the result of a cleanup_all run.
type Summary struct {
	Total    int                  `json:"total"`
	Succeeded int                 `json:"succeeded"`
	Failed   int                  `json:"failed"`
	ByType   map[ResourceType]int `json:"by_type"`
	Failures map[string]string    `json:"failures,omitempty"`
}

// Remover performs the actual deletion of one orphan, implemented per
// ResourceType by the caller (session delete, worktree removal, branch
// delete) so this package stays free of store/git wiring details beyond
// the Scan step.
type Remover func(Orphan) error

// Run removes orphans per strategy, isolating per-resource failures so
// one bad removal doesn't abort the batch.
func Run(orphans []Orphan, strategy Strategy, remove Remover) Summary {
	summary := Summary{Total: len(orphans), ByType: map[ResourceType]int{}, Failures: map[string]string{}}
	for _, o := range orphans {
		summary.ByType[o.Type]++
		if strategy == DryRun {
			continue
		}
		if strategy == Safe && o.Reason == "" {
			continue
		}
		if err := remove(o); err != nil {
			summary.Failed++
			summary.Failures[o.Ref] = err.Error()
			continue
		}
		summary.Succeeded++
	}
	if len(summary.Failures) == 0 {
		summary.Failures = nil
	}
	return summary
}
