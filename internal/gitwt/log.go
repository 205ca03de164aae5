package gitwt

import "strings"

// Commit is a single log entry, the unit the "commits" subcommand
// lists for a kild's branch.
type Commit struct {
	Hash    string `json:"hash"`
	Author  string `json:"author"`
	Date    string `json:"date"`
	Subject string `json:"subject"`
}

const logFieldSep = "\x1f"

// CommitLog returns the commits unique to the worktree at path since it
// diverged from base, newest first.
func CommitLog(path, base string) ([]Commit, error) {
	g := New(path)
	format := strings.Join([]string{"%H", "%an", "%ad", "%s"}, logFieldSep)
	out, err := g.run("log", "--date=iso-strict", "--pretty=format:"+format, base+"..HEAD")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(out) == "" {
		return nil, nil
	}
	var commits []Commit
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Split(line, logFieldSep)
		if len(fields) != 4 {
			continue
		}
		commits = append(commits, Commit{Hash: fields[0], Author: fields[1], Date: fields[2], Subject: fields[3]})
	}
	return commits, nil
}
