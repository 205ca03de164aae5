package terminal

import (
	"os"
	"os/exec"
	"strconv"
	"sync"

	"github.com/creack/pty"
	"github.com/kildhq/kild/internal/kilderr"
)

// ptyBackend is the embedded pseudo-terminal used by the GUI path: it
// forks the agent command directly under a pty.Start rather than
// scripting a host terminal window, so the GUI can render the pane
// itself instead of depositing a separate OS window.
type ptyBackend struct {
	mu    sync.Mutex
	files map[WindowHandle]*os.File
}

func NewPTYBackend() Backend {
	return &ptyBackend{files: make(map[WindowHandle]*os.File)}
}

func (b *ptyBackend) ID() string { return "embedded-pty" }

// IsAvailable is always true: the embedded backend has no external
// dependency beyond the pty syscalls this module links against.
func (b *ptyBackend) IsAvailable() bool { return true }

func (b *ptyBackend) Spawn(cfg SpawnConfig) (WindowHandle, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	cmd := exec.Command("sh", "-c", cfg.Command)
	cmd.Dir = cfg.WorkDir
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return "", kilderr.ErrSpawnFailed(err)
	}

	handle := WindowHandle(strconv.Itoa(cmd.Process.Pid))
	b.mu.Lock()
	b.files[handle] = ptmx
	b.mu.Unlock()
	return handle, nil
}

// File returns the pty master file for a handle so the GUI can read
// output and forward input; absent when the handle isn't one this
// backend instance spawned (e.g. after a process restart).
func (b *ptyBackend) File(handle WindowHandle) (*os.File, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	f, ok := b.files[handle]
	return f, ok
}

func (b *ptyBackend) Close(handle WindowHandle) error {
	if handle == "" {
		return nil
	}
	b.mu.Lock()
	f, ok := b.files[handle]
	delete(b.files, handle)
	b.mu.Unlock()
	if !ok {
		return nil
	}
	return f.Close()
}

func (b *ptyBackend) Focus(handle WindowHandle) error {
	// An embedded pane has no OS window to raise; focus is the GUI's
	// own concern (switching tabs), not this backend's.
	return nil
}
