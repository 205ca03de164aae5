package notify

import (
	"testing"
	"time"
)

func TestShouldSendNoSlot(t *testing.T) {
	m := NewManager(t.TempDir(), time.Hour)
	if !m.ShouldSend("sess1", "waiting") {
		t.Fatal("expected ShouldSend true when no slot exists")
	}
}

func TestMarkConsumedAllowsResend(t *testing.T) {
	m := NewManager(t.TempDir(), time.Hour)
	if err := m.writeSlot(Slot{Session: "sess1", Slot: "waiting", SentAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if m.ShouldSend("sess1", "waiting") {
		t.Fatal("expected ShouldSend false for a fresh, unconsumed slot")
	}
	if err := m.MarkConsumed("sess1", "waiting"); err != nil {
		t.Fatal(err)
	}
	if !m.ShouldSend("sess1", "waiting") {
		t.Fatal("expected ShouldSend true after MarkConsumed")
	}
}

func TestShouldSendStaleSlot(t *testing.T) {
	m := NewManager(t.TempDir(), time.Millisecond)
	if err := m.writeSlot(Slot{Session: "sess1", Slot: "waiting", SentAt: time.Now().Add(-time.Hour)}); err != nil {
		t.Fatal(err)
	}
	if !m.ShouldSend("sess1", "waiting") {
		t.Fatal("expected ShouldSend true for a stale slot")
	}
}

func TestNeedsInputMessage(t *testing.T) {
	got := NeedsInputMessage("claude", "feat/auth", "waiting")
	want := "Agent claude in feat/auth needs input (waiting)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
