// Package store persists one Session record per kild plus its typed
// sidecars, under a base directory (default "<home>/.kild"). Every
// write goes to a temp file in the same directory and is renamed into
// place, so a reader never observes a half-written file. Reads of a
// sidecar tolerate absence or corruption — treated as "no value", with
// nothing logged — so a broken sidecar never blocks loading the primary
// record.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/kildhq/kild/internal/kilderr"
)

// Store roots every path at BaseDir.
type Store struct {
	BaseDir string
}

// New returns a Store rooted at baseDir, which is not required to
// exist yet — every writer creates its parent directories on demand.
func New(baseDir string) *Store {
	return &Store{BaseDir: baseDir}
}

func (s *Store) sessionsDir() string       { return filepath.Join(s.BaseDir, "sessions") }
func (s *Store) sessionPath(id string) string {
	return filepath.Join(s.sessionsDir(), id+".json")
}
func (s *Store) agentSidecarPath(id string) string {
	return filepath.Join(s.sessionsDir(), id+".agent.json")
}
func (s *Store) prSidecarPath(id string) string {
	return filepath.Join(s.sessionsDir(), id+".pr.json")
}
func (s *Store) pidPath(id string) string {
	return filepath.Join(s.sessionsDir(), id+".pid")
}
func (s *Store) projectsPath() string {
	return filepath.Join(s.BaseDir, "projects.json")
}
func (s *Store) healthHistoryDir() string {
	return filepath.Join(s.BaseDir, "health_history")
}
func (s *Store) shimLogDir(sessionID string) string {
	return filepath.Join(s.BaseDir, "shim", sessionID)
}

// NewSessionID mints a fresh, globally-unique session id.
func NewSessionID() string {
	return uuid.NewString()
}

// writeAtomic writes data to path via a same-directory temp file and
// rename, guaranteeing a reader never observes a partial write.
func writeAtomic(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// SaveSession atomically writes the session record.
func (s *Store) SaveSession(sess Session) error {
	if err := sess.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(s.sessionPath(sess.SessionID), data, 0644)
}

// LoadSession reads one session record by id.
func (s *Store) LoadSession(id string) (Session, error) {
	data, err := os.ReadFile(s.sessionPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, kilderr.ErrSessionNotFound(id)
		}
		return Session{}, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, kilderr.Newf(kilderr.InvalidConfiguration, err, "session record %s is corrupted", id)
	}
	return sess, nil
}

// LoadSessionByBranch finds the session for (branch) among Active or
// Stopped records — (project,branch) is unique while status is not
// Destroyed, so a linear scan is sufficient at the scale this tool
// operates at (tens of concurrent kilds, not thousands).
func (s *Store) LoadSessionByBranch(projectID, branch string) (Session, error) {
	sessions, _, err := s.ListSessions()
	if err != nil {
		return Session{}, err
	}
	for _, sess := range sessions {
		if sess.ProjectID == projectID && sess.Branch == branch && sess.Status != StatusDestroyed {
			return sess, nil
		}
	}
	return Session{}, kilderr.ErrSessionNotFound(branch)
}

// ListSessions loads every <id>.json under the sessions directory.
// Malformed records are skipped and reported in the second return
// value rather than aborting the whole listing.
func (s *Store) ListSessions() ([]Session, []string, error) {
	entries, err := os.ReadDir(s.sessionsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	var sessions []Session
	var warnings []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || strings.Contains(name, ".agent.") || strings.Contains(name, ".pr.") {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		sess, err := s.LoadSession(id)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", id, err))
			continue
		}
		sessions = append(sessions, sess)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].CreatedAt.Before(sessions[j].CreatedAt) })
	return sessions, warnings, nil
}

// DeleteSession removes the primary record, every sidecar, and the pid
// file for id. Missing files are not errors — destroy is idempotent
// with respect to already-absent artifacts.
func (s *Store) DeleteSession(id string) error {
	for _, p := range []string{s.sessionPath(id), s.agentSidecarPath(id), s.prSidecarPath(id), s.pidPath(id)} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
