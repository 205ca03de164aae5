package terminal

import (
	"os/exec"
	"strconv"

	"github.com/kildhq/kild/internal/kilderr"
)

// gpuBackend drives a GPU-accelerated terminal emulator (alacritty,
// kitty, wezterm — the first found on PATH) by launching it directly
// with its own "run a command" flag, rather than scripting a window
// manager. The window handle is the spawned process's pid, since these
// terminals don't expose a stable window-id query the way the macOS
// scripting bridge does.
type gpuBackend struct {
	candidates []string
	resolved   string
}

func NewGPUBackend() Backend {
	return &gpuBackend{candidates: []string{"alacritty", "kitty", "wezterm"}}
}

func (b *gpuBackend) ID() string { return "gpu" }

func (b *gpuBackend) IsAvailable() bool {
	for _, c := range b.candidates {
		if commandAvailable(c) {
			b.resolved = c
			return true
		}
	}
	return false
}

func (b *gpuBackend) Spawn(cfg SpawnConfig) (WindowHandle, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if b.resolved == "" && !b.IsAvailable() {
		return "", kilderr.ErrNoTerminalFound()
	}
	full := BuildCDCommand(cfg.WorkDir, cfg.Command)
	var args []string
	switch b.resolved {
	case "wezterm":
		args = []string{"start", "--", "sh", "-c", full}
	default: // alacritty, kitty
		args = []string{"-e", "sh", "-c", full}
	}
	cmd := exec.Command(b.resolved, args...)
	if err := cmd.Start(); err != nil {
		return "", kilderr.ErrSpawnFailed(err)
	}
	pid := cmd.Process.Pid
	go cmd.Wait() // reap asynchronously; the terminal outlives this call
	return WindowHandle(strconv.Itoa(pid)), nil
}

func (b *gpuBackend) Close(handle WindowHandle) error {
	if handle == "" {
		return nil
	}
	pid, err := strconv.Atoi(string(handle))
	if err != nil {
		return nil
	}
	proc, err := processByPID(pid)
	if err != nil {
		return nil
	}
	return proc.Kill()
}

func (b *gpuBackend) Focus(handle WindowHandle) error {
	// GPU terminals have no portable scripting bridge for window focus;
	// this is a documented limitation rather than a silent no-op.
	return kilderr.ErrFocusFailed("focus is unsupported for GPU-accelerated terminal backends")
}
