// Package terminal enumerates and drives terminal backends: a
// GPU-accelerated terminal, two host-native terminals on the macOS
// path, and an embedded pseudo-terminal used by the GUI. Each backend
// implements the Backend interface; Registry picks the first available
// one in preference order, or resolves one by id.
package terminal

import (
	"os"
	"os/exec"
	"runtime"

	"github.com/kildhq/kild/internal/kilderr"
)

// WindowHandle is an opaque string retained after spawn so the exact
// window can later be focused or closed: an integer window id on the
// macOS path, a process id elsewhere.
type WindowHandle string

// SpawnConfig carries everything a backend needs to open a terminal
// running an agent command.
type SpawnConfig struct {
	WorkDir string
	Command string
	Title   string
}

// Validate enforces the launcher's preconditions: the working
// directory must exist and be a directory, and the command must be
// non-empty.
func (c SpawnConfig) Validate() error {
	info, err := os.Stat(c.WorkDir)
	if err != nil || !info.IsDir() {
		return kilderr.ErrWorkingDirectoryNotFound(c.WorkDir)
	}
	if c.Command == "" {
		return kilderr.ErrInvalidCommand()
	}
	return nil
}

// Backend is one terminal launch strategy.
type Backend interface {
	ID() string
	IsAvailable() bool
	Spawn(cfg SpawnConfig) (WindowHandle, error)
	Close(handle WindowHandle) error
	Focus(handle WindowHandle) error
}

// Registry holds the closed set of backends in preference order.
type Registry struct {
	backends []Backend
}

// NewRegistry builds the default registry for the running platform:
// GPU-accelerated terminal first, then the macOS-native terminals when
// on macOS, with the embedded pty always available as the fallback the
// GUI path uses directly.
func NewRegistry() *Registry {
	backends := []Backend{
		NewGPUBackend(),
	}
	if isDarwin() {
		backends = append(backends, NewTerminalAppBackend(), NewITermBackend())
	}
	backends = append(backends, NewPTYBackend())
	return &Registry{backends: backends}
}

// DetectDefault returns the first available backend in preference
// order.
func (r *Registry) DetectDefault() (Backend, error) {
	for _, b := range r.backends {
		if b.IsAvailable() {
			return b, nil
		}
	}
	return nil, kilderr.ErrNoTerminalFound()
}

// Get resolves a backend by id.
func (r *Registry) Get(id string) (Backend, error) {
	for _, b := range r.backends {
		if b.ID() == id {
			return b, nil
		}
	}
	return nil, kilderr.ErrTerminalNotFound(id)
}

// All returns every registered backend, available or not.
func (r *Registry) All() []Backend {
	return r.backends
}

func isDarwin() bool {
	return runtime.GOOS == "darwin"
}

func commandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
