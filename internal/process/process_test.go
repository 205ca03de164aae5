package process

import (
	"os/exec"
	"testing"
	"time"

	"github.com/kildhq/kild/internal/kilderr"
)

func TestIdentityValidate(t *testing.T) {
	cases := []struct {
		name    string
		id      Identity
		wantErr bool
	}{
		{"all absent", Identity{}, false},
		{"all present", Identity{PID: 1, Name: "sleep", StartTime: "t"}, false},
		{"name only", Identity{PID: 1, Name: "sleep"}, true},
		{"start only", Identity{PID: 1, StartTime: "t"}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.id.Validate()
			if (err != nil) != c.wantErr {
				t.Fatalf("Validate() err=%v, wantErr=%v", err, c.wantErr)
			}
		})
	}
}

func TestKillPidReuseDefense(t *testing.T) {
	cmd := exec.Command("sleep", "30")
	if err := cmd.Start(); err != nil {
		t.Skipf("cannot start sleep: %v", err)
	}
	pid := cmd.Process.Pid
	defer cmd.Process.Kill()

	err := Kill(pid, "definitely-not-the-real-name", "")
	if err == nil {
		t.Fatal("expected PidReused error, got nil")
	}
	kind, ok := kilderr.Of(err)
	if !ok || kind != kilderr.PidReused {
		t.Fatalf("expected PidReused kind, got %v", kind)
	}
	if !IsRunning(pid) {
		t.Fatal("process must still be alive after a rejected kill")
	}
}

func TestKillNotFound(t *testing.T) {
	// A pid astronomically unlikely to exist.
	err := Kill(999999, "", "")
	kind, ok := kilderr.Of(err)
	if !ok || kind != kilderr.ProcessNotFound {
		t.Fatalf("expected ProcessNotFound, got %v", err)
	}
}

func TestReadPIDFileWithRetryMissing(t *testing.T) {
	_, err := ReadPIDFileWithRetry("/nonexistent/path/for/test.pid", 30*time.Millisecond, 10*time.Millisecond)
	if err == nil {
		t.Fatal("expected error for missing pid file")
	}
}
