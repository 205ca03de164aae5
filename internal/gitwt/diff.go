package gitwt

import (
	"strconv"
	"strings"
)

// DiffStats summarizes unstaged changes between the index and the
// working tree.
type DiffStats struct {
	Insertions   int `json:"insertions"`
	Deletions    int `json:"deletions"`
	FilesChanged int `json:"files_changed"`
}

// HasChanges reports whether any file differs.
func (d DiffStats) HasChanges() bool {
	return d.FilesChanged > 0
}

// DiffStatsFor computes working-tree diff stats for the worktree at
// path, unstaged only (index vs. working tree).
func DiffStatsFor(path string) (DiffStats, error) {
	g := New(path)
	out, err := g.run("diff", "--numstat")
	if err != nil {
		return DiffStats{}, err
	}
	return parseNumstat(out), nil
}

func parseNumstat(out string) DiffStats {
	var stats DiffStats
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 3)
		if len(fields) < 3 {
			continue
		}
		ins, _ := strconv.Atoi(fields[0])
		del, _ := strconv.Atoi(fields[1])
		stats.Insertions += ins
		stats.Deletions += del
		stats.FilesChanged++
	}
	return stats
}

// ChangedFiles returns the set of file paths that differ between base
// and the worktree's HEAD, relative to the repository root.
func ChangedFiles(path, base string) ([]string, error) {
	g := New(path)
	out, err := g.run("diff", "--name-only", base+"...HEAD")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(out) == "" {
		return nil, nil
	}
	return strings.Split(strings.TrimSpace(out), "\n"), nil
}

// KildDiff is one kild's worktree path paired with its branch name,
// the unit overlap detection operates on.
type KildDiff struct {
	Branch       string
	WorktreePath string
}

// OverlappingFile names a file touched by more than one kild.
type OverlappingFile struct {
	File     string   `json:"file"`
	Branches []string `json:"branches"`
}

// CleanKild is a kild whose change-set doesn't intersect any other's.
type CleanKild struct {
	Branch       string `json:"branch"`
	ChangedFiles int    `json:"changed_files"`
}

// OverlapReport is the result of collecting file overlaps across a set
// of kilds sharing a base branch.
type OverlapReport struct {
	Overlapping []OverlappingFile `json:"overlapping_files"`
	Clean       []CleanKild       `json:"clean_kilds"`
	Failures    map[string]string `json:"failures,omitempty"`
}

// CollectFileOverlaps computes, for each kild, its changed-file set
// relative to base, then reports files touched by more than one kild
// and kilds whose set is disjoint from every other. A failure scanning
// one kild is recorded per-branch in Failures rather than aborting the
// whole batch.
func CollectFileOverlaps(kilds []KildDiff, base string) OverlapReport {
	fileOwners := make(map[string][]string)
	changeCounts := make(map[string]int)
	failures := make(map[string]string)

	for _, k := range kilds {
		files, err := ChangedFiles(k.WorktreePath, base)
		if err != nil {
			failures[k.Branch] = err.Error()
			continue
		}
		changeCounts[k.Branch] = len(files)
		for _, f := range files {
			fileOwners[f] = append(fileOwners[f], k.Branch)
		}
	}

	var report OverlapReport
	touchedByMultiple := make(map[string]bool)
	for file, branches := range fileOwners {
		if len(branches) > 1 {
			report.Overlapping = append(report.Overlapping, OverlappingFile{File: file, Branches: branches})
			for _, b := range branches {
				touchedByMultiple[b] = true
			}
		}
	}
	for branch, count := range changeCounts {
		if !touchedByMultiple[branch] {
			report.Clean = append(report.Clean, CleanKild{Branch: branch, ChangedFiles: count})
		}
	}
	if len(failures) > 0 {
		report.Failures = failures
	}
	return report
}
