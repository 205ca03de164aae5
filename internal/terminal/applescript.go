package terminal

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/kildhq/kild/internal/kilderr"
)

// appleScriptBackend drives one of the two host-native terminals on
// the macOS path (Terminal.app or iTerm2) via osascript. The spawn
// script activates the app, opens a new window running the composite
// "cd DIR && CMD" shell line, and returns that window's id so it can be
// closed or focused later without touching an unrelated window.
type appleScriptBackend struct {
	id        string
	appName   string
	newWindow string // AppleScript fragment that creates a window running `cmd` and yields `id of front window`
}

func NewTerminalAppBackend() Backend {
	return &appleScriptBackend{
		id:      "terminal",
		appName: "Terminal",
		newWindow: `tell application "Terminal"
	activate
	set newTab to do script %s
	delay 0.2
	return id of front window
end tell`,
	}
}

func NewITermBackend() Backend {
	return &appleScriptBackend{
		id:      "iterm2",
		appName: "iTerm",
		newWindow: `tell application "iTerm"
	activate
	set newWindow to (create window with default profile)
	tell current session of newWindow
		write text %s
	end tell
	return id of newWindow
end tell`,
	}
}

func (b *appleScriptBackend) ID() string { return b.id }

func (b *appleScriptBackend) IsAvailable() bool {
	if !commandAvailable("osascript") {
		return false
	}
	_, err := exec.Command("osascript", "-e", `id of application "`+b.appName+`"`).Output()
	return err == nil
}

func (b *appleScriptBackend) Spawn(cfg SpawnConfig) (WindowHandle, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	full := BuildCDCommand(cfg.WorkDir, cfg.Command)
	literal := `"` + AppleScriptEscape(full) + `"`
	script := fmt.Sprintf(b.newWindow, literal)

	out, err := exec.Command("osascript", "-e", script).Output()
	if err != nil {
		return "", kilderr.ErrSpawnFailed(err)
	}
	return WindowHandle(strings.TrimSpace(string(out))), nil
}

func (b *appleScriptBackend) Close(handle WindowHandle) error {
	if handle == "" {
		// Silent no-op, no warning is emitted: closing without a handle
		// risks closing an unrelated window.
		return nil
	}
	script := `tell application "` + b.appName + `" to close (every window whose id is ` + string(handle) + `)`
	_, err := exec.Command("osascript", "-e", script).Output()
	return err
}

func (b *appleScriptBackend) Focus(handle WindowHandle) error {
	if handle == "" {
		return kilderr.ErrFocusFailed("no window handle recorded")
	}
	script := `tell application "` + b.appName + `"
	activate
	set index of (first window whose id is ` + string(handle) + `) to 1
end tell`
	out, err := exec.Command("osascript", "-e", script).CombinedOutput()
	if err != nil {
		return kilderr.ErrFocusFailed(strings.TrimSpace(string(out)))
	}
	return nil
}
