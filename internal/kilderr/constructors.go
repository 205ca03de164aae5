package kilderr

import "fmt"

// Message formats below mirror the Display strings in the prior
// implementation's per-domain error enums so CLI output stays familiar
// to anyone who used the tool before the rewrite.

func ErrNotInRepository() *Error {
	return New(NotInRepository, "not inside a git repository", nil)
}

func ErrBranchAlreadyExists(name string) *Error {
	return Newf(BranchAlreadyExists, nil, "branch %q already exists", name)
}

func ErrBranchNotFound(name string) *Error {
	return Newf(BranchNotFound, nil, "branch %q not found", name)
}

func ErrWorktreeAlreadyExists(path string) *Error {
	return Newf(WorktreeAlreadyExists, nil, "worktree already exists at %s", path)
}

func ErrWorktreeNotFound(path string) *Error {
	return Newf(WorktreeNotFound, nil, "worktree not found at path: %s", path)
}

func ErrWorktreeRemovalFailed(path string, cause error) *Error {
	return Newf(WorktreeRemovalFailed, cause, "failed to remove worktree at %s", path)
}

func ErrInvalidPath(path string) *Error {
	return Newf(InvalidPath, nil, "invalid path: %s", path)
}

func ErrSessionAlreadyExists(name string) *Error {
	return Newf(SessionAlreadyExists, nil, "session %q already exists", name)
}

func ErrSessionNotFound(name string) *Error {
	return Newf(SessionNotFound, nil, "session %q not found", name)
}

func ErrInvalidSessionName() *Error {
	return New(InvalidName, "invalid session name: cannot be empty", nil)
}

func ErrInvalidCommand() *Error {
	return New(InvalidCommand, "invalid command: cannot be empty", nil)
}

func ErrInvalidPortCount() *Error {
	return New(InvalidPortCount, "invalid port count: must be greater than 0", nil)
}

func ErrPortRangeExhausted() *Error {
	return New(PortRangeExhausted, "port range exhausted: no available ports in the configured range", nil)
}

func ErrProcessNotFound(pid int) *Error {
	return Newf(ProcessNotFound, nil, "process %d not found", pid)
}

func ErrProcessKillFailed(pid int, cause error) *Error {
	return Newf(ProcessKillFailed, cause, "failed to kill process %d", pid)
}

func ErrProcessAccessDenied(pid int) *Error {
	return Newf(ProcessAccessDenied, nil, "access denied for process %d", pid)
}

func ErrPidReused(pid int, expectedName, actualName string) *Error {
	return Newf(PidReused, nil, "pid %d was reused: expected %q, found %q", pid, expectedName, actualName)
}

func ErrInvalidProcessMetadata() *Error {
	return New(InvalidProcessMetadata,
		"invalid process metadata: pid, process name, and start time must all be present or all absent", nil)
}

func ErrInvalidAgentStatus(status string) *Error {
	return Newf(InvalidAgentStatus, nil,
		"invalid agent status: %q. valid: working, idle, waiting, done, error", status)
}

func ErrUncommittedChanges(name string) *Error {
	return Newf(UncommittedChanges, nil,
		"cannot complete %q with uncommitted changes. use 'kild destroy --force' to remove", name)
}

func ErrNoTerminalFound() *Error {
	return New(NoTerminalFound, "no available terminal backend found", nil)
}

func ErrTerminalNotFound(id string) *Error {
	return Newf(TerminalNotFound, nil, "terminal %q not found", id)
}

func ErrSpawnFailed(cause error) *Error {
	return New(SpawnFailed, fmt.Sprintf("failed to spawn terminal: %v", cause), cause)
}

func ErrFocusFailed(diagnostic string) *Error {
	return Newf(FocusFailed, nil, "failed to focus window: %s", diagnostic)
}

func ErrWorkingDirectoryNotFound(path string) *Error {
	return Newf(WorkingDirectoryNotFound, nil, "working directory not found: %s", path)
}

func ErrConfigNotFound(path string) *Error {
	return Newf(ConfigNotFound, nil, "config file not found: %s", path)
}

func ErrConfigParseError(path string, cause error) *Error {
	return Newf(ConfigParseError, cause, "failed to parse config %s", path)
}

func ErrInvalidAgent(id string, known []string) *Error {
	return Newf(InvalidAgent, nil, "unknown agent %q. supported: %v", id, known)
}

func ErrInvalidConfiguration(message string) *Error {
	return New(InvalidConfiguration, message, nil)
}

func ErrProjectNotADirectory(path string) *Error {
	return Newf(ProjectNotADirectory, nil, "path is not a directory: %s", path)
}

func ErrProjectNotAGitRepo(path string) *Error {
	return Newf(ProjectNotAGitRepo, nil, "path is not a git repository: %s", path)
}

func ErrProjectAlreadyExists(path string) *Error {
	return Newf(ProjectAlreadyExists, nil, "project already exists: %s", path)
}

func ErrProjectNotFound(path string) *Error {
	return Newf(ProjectNotFound, nil, "project not found: %s", path)
}

func ErrHealthMetricsFailed(cause error) *Error {
	return New(HealthMetricsFailed, fmt.Sprintf("failed to collect health metrics: %v", cause), cause)
}

func ErrNoOrphanedResources() *Error {
	return New(NoOrphanedResources, "no orphaned resources found", nil)
}

func ErrCleanupFailed(resource string, cause error) *Error {
	return Newf(CleanupFailed, cause, "cleanup failed for %s", resource)
}

func ErrPermissionDenied(path string) *Error {
	return Newf(PermissionDenied, nil, "permission denied: %s", path)
}

func ErrFileInvalidPattern(pattern string, cause error) *Error {
	return Newf(FileInvalidPattern, cause, "invalid pattern %q", pattern)
}

func ErrFileTooLarge(path string, size, max int64) *Error {
	return Newf(FileTooLarge, nil, "file %s is %d bytes, exceeds limit of %d bytes", path, size, max)
}
