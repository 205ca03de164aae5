package store

import (
	"context"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/kildhq/kild/internal/kilderr"
)

// DefaultPortBase and DefaultPortMax bound the base range a contiguous
// port window is allocated from when the caller doesn't configure one.
const (
	DefaultPortBase = 3000
	DefaultPortMax  = 3999
)

// AllocatePortWindow picks the lowest-starting free window of size
// count within [base, max] for projectID, scanning the port ranges of
// every other Active session in that project. The scan-then-write is
// guarded by an advisory file lock on a sentinel file so two concurrent
// `kild create` invocations in the same project don't hand out
// overlapping windows — the only place in this module where a
// cross-process lock is load-bearing, since everywhere else last-writer-
// wins on an independent file is sufficient.
func (s *Store) AllocatePortWindow(projectID string, count, base, max int) (PortRange, error) {
	if count <= 0 {
		return PortRange{}, kilderr.ErrInvalidPortCount()
	}

	lockPath := filepath.Join(s.BaseDir, ".port-allocation.lock")
	lk := flock.New(lockPath)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	locked, err := lk.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil || !locked {
		return PortRange{}, kilderr.Newf(kilderr.PortRangeExhausted, err, "could not acquire port allocation lock")
	}
	defer lk.Unlock()

	sessions, _, err := s.ListSessions()
	if err != nil {
		return PortRange{}, err
	}

	taken := make([]bool, max-base+1)
	for _, sess := range sessions {
		if sess.ProjectID != projectID || sess.Status != StatusActive {
			continue
		}
		for p := sess.Ports.Start; p <= sess.Ports.End && p >= base && p <= max; p++ {
			taken[p-base] = true
		}
	}

	for start := base; start+count-1 <= max; start++ {
		free := true
		for p := start; p < start+count; p++ {
			if taken[p-base] {
				free = false
				break
			}
		}
		if free {
			return PortRange{Start: start, End: start + count - 1, Count: count}, nil
		}
	}
	return PortRange{}, kilderr.ErrPortRangeExhausted()
}

// FreePortWindow is a no-op placeholder for symmetry with allocation:
// ports are freed implicitly once the owning session is deleted, since
// AllocatePortWindow only ever looks at Active sessions' windows.
func (s *Store) FreePortWindow(PortRange) {}
