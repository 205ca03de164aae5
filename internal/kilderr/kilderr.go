// Package kilderr implements the typed error taxonomy shared by every
// subsystem. A single Error carries a stable Code and an IsUserError
// flag so the CLI can decide whether to print a one-line diagnostic or
// a structured log record with the underlying cause.
package kilderr

import "fmt"

// Kind enumerates the closed set of error kinds named in the error
// handling design. It is not a type name per subsystem — Go errors are
// values, so one Error struct carries a Kind instead of a hierarchy of
// per-domain types.
type Kind string

const (
	NotInRepository          Kind = "NOT_IN_REPOSITORY"
	BranchAlreadyExists      Kind = "BRANCH_ALREADY_EXISTS"
	BranchNotFound           Kind = "BRANCH_NOT_FOUND"
	WorktreeAlreadyExists    Kind = "WORKTREE_ALREADY_EXISTS"
	WorktreeNotFound         Kind = "WORKTREE_NOT_FOUND"
	WorktreeRemovalFailed    Kind = "WORKTREE_REMOVAL_FAILED"
	InvalidPath              Kind = "INVALID_PATH"
	SessionAlreadyExists     Kind = "SESSION_ALREADY_EXISTS"
	SessionNotFound          Kind = "SESSION_NOT_FOUND"
	InvalidName              Kind = "INVALID_SESSION_NAME"
	InvalidCommand           Kind = "INVALID_COMMAND"
	InvalidPortCount         Kind = "INVALID_PORT_COUNT"
	PortRangeExhausted       Kind = "PORT_RANGE_EXHAUSTED"
	ProcessNotFound          Kind = "PROCESS_NOT_FOUND"
	ProcessKillFailed        Kind = "PROCESS_KILL_FAILED"
	ProcessAccessDenied      Kind = "PROCESS_ACCESS_DENIED"
	PidReused                Kind = "PID_REUSED"
	InvalidProcessMetadata   Kind = "INVALID_PROCESS_METADATA"
	InvalidAgentStatus       Kind = "INVALID_AGENT_STATUS"
	UncommittedChanges       Kind = "SESSION_UNCOMMITTED_CHANGES"
	NoTerminalFound          Kind = "NO_TERMINAL_FOUND"
	TerminalNotFound         Kind = "TERMINAL_NOT_FOUND"
	SpawnFailed              Kind = "SPAWN_FAILED"
	FocusFailed              Kind = "FOCUS_FAILED"
	WorkingDirectoryNotFound Kind = "WORKING_DIRECTORY_NOT_FOUND"
	ConfigNotFound           Kind = "CONFIG_NOT_FOUND"
	ConfigParseError         Kind = "CONFIG_PARSE_ERROR"
	InvalidAgent             Kind = "INVALID_AGENT"
	InvalidConfiguration     Kind = "INVALID_CONFIGURATION"
	ProjectNotADirectory     Kind = "PROJECT_NOT_A_DIRECTORY"
	ProjectNotAGitRepo       Kind = "PROJECT_NOT_A_GIT_REPO"
	ProjectAlreadyExists     Kind = "PROJECT_ALREADY_EXISTS"
	ProjectNotFound          Kind = "PROJECT_NOT_FOUND"
	HealthMetricsFailed      Kind = "HEALTH_METRICS_FAILED"
	NoOrphanedResources      Kind = "NO_ORPHANED_RESOURCES"
	CleanupFailed            Kind = "CLEANUP_FAILED"
	PermissionDenied         Kind = "PERMISSION_DENIED"
	FileInvalidPattern       Kind = "FILE_INVALID_PATTERN"
	FileTooLarge             Kind = "FILE_TOO_LARGE"
)

// userErrorKinds are diagnostics the caller can fix; everything else is
// an internal error worth a structured log record alongside the
// one-line message.
var userErrorKinds = map[Kind]bool{
	NotInRepository:          true,
	BranchAlreadyExists:      true,
	BranchNotFound:           true,
	WorktreeAlreadyExists:    true,
	WorktreeNotFound:         true,
	InvalidPath:              true,
	SessionAlreadyExists:     true,
	SessionNotFound:          true,
	InvalidName:              true,
	InvalidCommand:           true,
	InvalidPortCount:         true,
	PortRangeExhausted:       true,
	ProcessNotFound:          true,
	InvalidProcessMetadata:   true,
	InvalidAgentStatus:       true,
	UncommittedChanges:       true,
	NoTerminalFound:          true,
	TerminalNotFound:         true,
	WorkingDirectoryNotFound: true,
	ConfigNotFound:           true,
	ConfigParseError:         true,
	InvalidAgent:             true,
	InvalidConfiguration:     true,
	ProjectNotADirectory:     true,
	ProjectNotAGitRepo:       true,
	ProjectAlreadyExists:     true,
	ProjectNotFound:          true,
	NoOrphanedResources:      true,
	PermissionDenied:         true,
	FileInvalidPattern:       true,
	FileTooLarge:             true,
}

// Error is the single error type used across the module. Subsystems
// construct it via the New helper or one of the domain constructors
// below rather than returning bare fmt.Errorf values, so the CLI's
// dispatch boundary can always recover a Kind.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Code returns the stable machine-readable string for this error kind.
func (e *Error) Code() string { return string(e.Kind) }

// IsUserError reports whether this is a diagnostic the caller can act
// on (print message + exit 1) versus an internal failure worth a
// structured log line alongside the message.
func (e *Error) IsUserError() bool { return userErrorKinds[e.Kind] }

// New builds an Error of the given kind wrapping an optional cause.
func New(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Newf is New with a formatted message.
func Newf(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Of extracts the Kind from any error, returning ("", false) when err
// is nil or not a *Error (or does not wrap one).
func Of(err error) (Kind, bool) {
	var e *Error
	if asError(err, &e) {
		return e.Kind, true
	}
	return "", false
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
