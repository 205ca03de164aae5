package dashboard

import (
	"testing"

	"github.com/kildhq/kild/internal/health"
	"github.com/kildhq/kild/internal/store"
)

func TestRowsFromSessionsJoinsBySessionID(t *testing.T) {
	sessions := []store.Session{
		{SessionID: "s1", Branch: "feat/a", Agent: "claude", ProjectID: "p1"},
		{SessionID: "s2", Branch: "feat/b", Agent: "codex", ProjectID: "p1"},
	}
	metrics := []health.Metrics{
		{SessionID: "s1", Class: health.Working, CPUPercent: 12.5, MemoryMB: 200},
	}

	rows := RowsFromSessions(sessions, metrics)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Health != health.Working || rows[0].CPU != 12.5 {
		t.Errorf("row 0 did not pick up matching metrics: %+v", rows[0])
	}
	if rows[1].Health != "" {
		t.Errorf("row 1 should have zero-value health for unmatched session, got %q", rows[1].Health)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate should not touch strings under the limit, got %q", got)
	}
	if got := truncate("a-very-long-branch-name", 10); len(got) != 10 {
		t.Errorf("truncate(...) len = %d, want 10", len(got))
	}
}
