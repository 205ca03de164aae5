package cmd

import (
	"errors"
	"testing"

	"github.com/kildhq/kild/internal/kilderr"
	"github.com/kildhq/kild/internal/store"
)

func TestFilterByProject(t *testing.T) {
	sessions := []store.Session{
		{SessionID: "a", ProjectID: "p1"},
		{SessionID: "b", ProjectID: "p2"},
		{SessionID: "c", ProjectID: "p1"},
	}
	got := filterByProject(sessions, "p1")
	if len(got) != 2 {
		t.Fatalf("expected 2 sessions for p1, got %d", len(got))
	}
	for _, s := range got {
		if s.ProjectID != "p1" {
			t.Errorf("leaked session from wrong project: %+v", s)
		}
	}
}

func TestFilterByProjectNoMatches(t *testing.T) {
	sessions := []store.Session{{SessionID: "a", ProjectID: "p1"}}
	got := filterByProject(sessions, "p9")
	if len(got) != 0 {
		t.Fatalf("expected no sessions, got %d", len(got))
	}
}

func TestParseAgentStatusValid(t *testing.T) {
	for _, s := range []string{"working", "idle", "waiting", "done", "error"} {
		got, err := parseAgentStatus(s)
		if err != nil {
			t.Fatalf("parseAgentStatus(%q): %v", s, err)
		}
		if string(got) != s {
			t.Errorf("parseAgentStatus(%q) = %q", s, got)
		}
	}
}

func TestParseAgentStatusInvalid(t *testing.T) {
	if _, err := parseAgentStatus("bogus"); err == nil {
		t.Fatal("expected error for invalid agent status")
	}
}

func TestExitCodeFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"generic", errors.New("boom"), 1},
		{"no orphans", kilderr.ErrNoOrphanedResources(), 2},
		{"user error", kilderr.ErrSessionNotFound("feat/x"), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := exitCodeFor(tc.err); got != tc.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}
