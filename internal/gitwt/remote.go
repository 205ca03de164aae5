package gitwt

import "strings"

// RebaseResult surfaces a rebase's conflict status as data rather than
// an error, since a conflicted rebase is a normal outcome the caller
// must present to the user, not a failure of the rebase command itself.
type RebaseResult struct {
	Conflicted    bool     `json:"conflicted"`
	ConflictFiles []string `json:"conflict_files,omitempty"`
}

// FetchRemote fetches the named remote into the repository at path.
func FetchRemote(path, remote string) error {
	_, err := New(path).run("fetch", remote)
	return err
}

// RebaseWorktree rebases the worktree at path onto the given ref. A
// conflicting rebase is reported via RebaseResult.Conflicted rather
// than returned as an error; the rebase is left in progress so the
// caller can resolve or abort it.
func RebaseWorktree(path, onto string) (RebaseResult, error) {
	g := New(path)
	_, err := g.run("rebase", onto)
	if err == nil {
		return RebaseResult{}, nil
	}
	status, statusErr := g.run("status", "--porcelain")
	if statusErr != nil {
		return RebaseResult{}, err
	}
	var conflicts []string
	for _, line := range strings.Split(status, "\n") {
		if strings.HasPrefix(line, "UU ") || strings.HasPrefix(line, "AA ") {
			conflicts = append(conflicts, strings.TrimSpace(line[3:]))
		}
	}
	if len(conflicts) == 0 {
		// Not a conflict we recognize — surface the original error.
		return RebaseResult{}, err
	}
	return RebaseResult{Conflicted: true, ConflictFiles: conflicts}, nil
}
