// kild-peek prints a single kild's status line for embedding in a shell
// prompt. It is quiet by default; -v/--verbose enables log output.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kildhq/kild/internal/gitwt"
	"github.com/kildhq/kild/internal/logging"
	"github.com/kildhq/kild/internal/store"
	"github.com/kildhq/kild/internal/util"
)

func main() {
	var (
		session string
		verbose bool
	)
	flag.StringVar(&session, "session", "", "Session id or branch name (default: detect from cwd worktree)")
	flag.BoolVar(&verbose, "v", false, "Enable log output")
	flag.BoolVar(&verbose, "verbose", false, "Enable log output")
	flag.Parse()

	level := logging.LevelQuiet
	if verbose {
		level = logging.LevelVerbose
	}
	log := logging.New(level)

	dir := util.ExpandHome("~/.kild")
	if v := os.Getenv("KILD_BASE_DIR"); v != "" {
		dir = util.ExpandHome(v)
	}

	line, err := peek(dir, session)
	if err != nil {
		logging.Event(log, "kild_peek_failed")
		fmt.Println("kild: ?")
		os.Exit(1)
	}
	fmt.Println(line)
}

func peek(baseDir, session string) (string, error) {
	s := store.New(baseDir)

	var sess store.Session
	var ok bool
	if session != "" {
		if loaded, err := s.LoadSession(session); err == nil {
			sess, ok = loaded, true
		} else {
			sess, ok = lookupByBranch(s, session)
		}
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		sess, ok = lookupByWorktree(s, cwd)
	}
	if !ok {
		return "", fmt.Errorf("no kild found")
	}

	agentStatus, hasStatus := s.LoadAgentStatus(sess.SessionID)
	return formatPeekLine(sess, agentStatus, hasStatus), nil
}

func lookupByBranch(s *store.Store, branch string) (store.Session, bool) {
	sessions, _, err := s.ListSessions()
	if err != nil {
		return store.Session{}, false
	}
	for _, sess := range sessions {
		if sess.Branch == branch {
			return sess, true
		}
	}
	return store.Session{}, false
}

func lookupByWorktree(s *store.Store, cwd string) (store.Session, bool) {
	sessions, _, err := s.ListSessions()
	if err != nil {
		return store.Session{}, false
	}
	root, err := gitwt.New(cwd).RepoRoot()
	if err != nil {
		root = cwd
	}
	for _, sess := range sessions {
		if sess.WorktreePath == cwd || sess.WorktreePath == root {
			return sess, true
		}
	}
	return store.Session{}, false
}

func formatPeekLine(sess store.Session, agentStatus store.AgentStatusInfo, hasStatus bool) string {
	status := "unknown"
	if hasStatus {
		status = string(agentStatus.Status)
	}
	return fmt.Sprintf("%s [%s] %s", sess.Branch, sess.Agent, status)
}
