package health

import (
	"os/exec"
	"testing"
	"time"

	"github.com/kildhq/kild/internal/process"
	"github.com/kildhq/kild/internal/store"
)

func TestClassifyCrashed(t *testing.T) {
	class := Classify(store.ProcessIdentity{}, true, time.Now(), false, time.Now(), 10*time.Minute)
	if class != Crashed {
		t.Fatalf("got %v, want Crashed", class)
	}
}

func TestClassifyWorkingAndIdle(t *testing.T) {
	cmd := exec.Command("sleep", "30")
	if err := cmd.Start(); err != nil {
		t.Skipf("cannot spawn sleep: %v", err)
	}
	defer cmd.Process.Kill()
	pid := cmd.Process.Pid

	id := store.ProcessIdentity{PID: pid, Name: "sleep", StartTime: "x"}
	now := time.Now()

	working := Classify(id, true, now.Add(-time.Minute), false, now, 10*time.Minute)
	if working != Working {
		t.Errorf("got %v, want Working", working)
	}

	idle := Classify(id, true, now.Add(-time.Hour), false, now, 10*time.Minute)
	if idle != Idle {
		t.Errorf("got %v, want Idle", idle)
	}

	stuck := Classify(id, true, now.Add(-time.Hour), true, now, 10*time.Minute)
	if stuck != Stuck {
		t.Errorf("got %v, want Stuck", stuck)
	}
}

func TestClassifyUnknown(t *testing.T) {
	cmd := exec.Command("sleep", "30")
	if err := cmd.Start(); err != nil {
		t.Skipf("cannot spawn sleep: %v", err)
	}
	defer cmd.Process.Kill()
	id := store.ProcessIdentity{PID: cmd.Process.Pid, Name: "sleep", StartTime: "x"}
	if got := Classify(id, false, time.Time{}, false, time.Now(), 10*time.Minute); got != Unknown {
		t.Fatalf("got %v, want Unknown", got)
	}
}

func TestConfigGetSet(t *testing.T) {
	cfg := NewConfig(10 * time.Minute)
	if cfg.Get() != 10*time.Minute {
		t.Fatalf("got %v, want 10m", cfg.Get())
	}
	cfg.Set(5 * time.Minute)
	if cfg.Get() != 5*time.Minute {
		t.Fatalf("got %v, want 5m after Set", cfg.Get())
	}
}

func TestAggregate(t *testing.T) {
	metrics := []Metrics{
		{Class: Working, CPUPercent: 10, MemoryMB: 100},
		{Class: Idle, CPUPercent: 0, MemoryMB: 50},
	}
	snap := Aggregate(metrics, time.Now())
	if snap.Total != 2 || snap.ByClass[Working] != 1 || snap.ByClass[Idle] != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.AverageCPU != 5 {
		t.Fatalf("got avg cpu %v, want 5", snap.AverageCPU)
	}
}

func TestHistoryAppendLoadPrune(t *testing.T) {
	dir := t.TempDir()
	h := NewHistory(dir)
	now := time.Now()
	if err := h.Append(Snapshot{Timestamp: now, Total: 1, ByClass: map[Class]int{Working: 1}}); err != nil {
		t.Fatal(err)
	}
	snaps, err := h.Load(now)
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(snaps))
	}

	old := now.AddDate(0, 0, -30)
	if err := h.Append(Snapshot{Timestamp: old, Total: 1}); err != nil {
		t.Fatal(err)
	}
	if err := h.Prune(now, 7); err != nil {
		t.Fatal(err)
	}
	oldSnaps, err := h.Load(old)
	if err != nil {
		t.Fatal(err)
	}
	if oldSnaps != nil {
		t.Fatalf("expected old snapshot file pruned, got %v", oldSnaps)
	}
}

func TestReconcile(t *testing.T) {
	cmd := exec.Command("sleep", "30")
	if err := cmd.Start(); err != nil {
		t.Skipf("cannot spawn sleep: %v", err)
	}
	defer cmd.Process.Kill()

	sess := store.Session{
		SessionID:    "s1",
		Identity:     store.ProcessIdentity{PID: cmd.Process.Pid, Name: "sleep", StartTime: "x"},
		LastActivity: time.Now(),
	}
	cfg := NewConfig(10 * time.Minute)
	m := Reconcile(sess, store.AgentStatusInfo{}, false, cfg, time.Now())
	if m.Class != Working {
		t.Fatalf("got %v, want Working", m.Class)
	}
	if !process.IsRunning(cmd.Process.Pid) {
		t.Fatal("expected process still running")
	}
}
