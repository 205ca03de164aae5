package store

import (
	"testing"
	"time"
)

func newTestSession(t *testing.T, s *Store, branch string) Session {
	t.Helper()
	return Session{
		SessionID:    NewSessionID(),
		ProjectID:    "proj1",
		Branch:       branch,
		Agent:        "claude",
		Status:       StatusActive,
		CreatedAt:    time.Now(),
		WorktreePath: "/tmp/worktrees/proj1/" + branch,
		Ports:        PortRange{Start: 3000, End: 3000, Count: 1},
		Command:      "claude",
		LastActivity: time.Now(),
	}
}

func TestSaveLoadDeleteSession(t *testing.T) {
	s := New(t.TempDir())
	sess := newTestSession(t, s, "feat/auth")
	if err := s.SaveSession(sess); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	loaded, err := s.LoadSession(sess.SessionID)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if loaded.Branch != "feat/auth" {
		t.Errorf("branch = %q, want feat/auth", loaded.Branch)
	}

	if err := s.DeleteSession(sess.SessionID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := s.LoadSession(sess.SessionID); err == nil {
		t.Fatal("expected SessionNotFound after delete")
	}
}

func TestListSessionsSkipsMalformed(t *testing.T) {
	s := New(t.TempDir())
	good := newTestSession(t, s, "feat/a")
	if err := s.SaveSession(good); err != nil {
		t.Fatal(err)
	}
	// Write a malformed record directly.
	writeAtomic(s.sessionPath("bad-id"), []byte("{not json"), 0644)

	sessions, warnings, err := s.ListSessions()
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 valid session, got %d", len(sessions))
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
}

func TestSidecarRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	id := NewSessionID()

	if _, ok := s.LoadAgentStatus(id); ok {
		t.Fatal("expected no agent status before any write")
	}

	info := AgentStatusInfo{Status: AgentWaiting, UpdatedAt: time.Now()}
	if err := s.SaveAgentStatus(id, info); err != nil {
		t.Fatalf("SaveAgentStatus: %v", err)
	}
	loaded, ok := s.LoadAgentStatus(id)
	if !ok || loaded.Status != AgentWaiting {
		t.Fatalf("LoadAgentStatus = %+v, ok=%v", loaded, ok)
	}
}

func TestSidecarMalformedDoesNotBlockRead(t *testing.T) {
	s := New(t.TempDir())
	sess := newTestSession(t, s, "feat/b")
	if err := s.SaveSession(sess); err != nil {
		t.Fatal(err)
	}
	writeAtomic(s.agentSidecarPath(sess.SessionID), []byte("not json"), 0644)

	if _, ok := s.LoadAgentStatus(sess.SessionID); ok {
		t.Fatal("malformed sidecar should report no value")
	}
	if _, err := s.LoadSession(sess.SessionID); err != nil {
		t.Fatalf("primary record load must not be affected by a bad sidecar: %v", err)
	}
}

func TestInvalidProcessMetadata(t *testing.T) {
	s := New(t.TempDir())
	sess := newTestSession(t, s, "feat/c")
	sess.Identity = ProcessIdentity{PID: 123} // name/start missing
	if err := s.SaveSession(sess); err == nil {
		t.Fatal("expected InvalidProcessMetadata")
	}
}

func TestAllocatePortWindowDisjoint(t *testing.T) {
	s := New(t.TempDir())
	first, err := s.AllocatePortWindow("proj1", 10, DefaultPortBase, DefaultPortMax)
	if err != nil {
		t.Fatalf("AllocatePortWindow: %v", err)
	}
	sess := newTestSession(t, s, "feat/a")
	sess.Ports = first
	if err := s.SaveSession(sess); err != nil {
		t.Fatal(err)
	}

	second, err := s.AllocatePortWindow("proj1", 10, DefaultPortBase, DefaultPortMax)
	if err != nil {
		t.Fatalf("AllocatePortWindow: %v", err)
	}
	if second.Start <= first.End {
		t.Fatalf("expected disjoint windows, got %+v and %+v", first, second)
	}
}

func TestAllocatePortWindowInvalidCount(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.AllocatePortWindow("proj1", 0, DefaultPortBase, DefaultPortMax); err == nil {
		t.Fatal("expected InvalidPortCount")
	}
}
