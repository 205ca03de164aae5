// Package health classifies each kild's liveness from process metrics
// and the agent-status sidecar, and aggregates a snapshot for history.
package health

import (
	"sync/atomic"
	"time"

	"github.com/kildhq/kild/internal/process"
	"github.com/kildhq/kild/internal/store"
)

// Class is the closed set of health classifications.
type Class string

const (
	Working Class = "working"
	Idle    Class = "idle"
	Stuck   Class = "stuck"
	Unknown Class = "unknown"
	Crashed Class = "crashed"
)

// icons maps each Class to the glyph the CLI/GUI renders next to it.
var icons = map[Class]string{
	Working: "●",
	Idle:    "○",
	Stuck:   "!",
	Unknown: "?",
	Crashed: "✗",
}

// Icon returns the display glyph for a classification.
func Icon(c Class) string { return icons[c] }

// Metrics is the per-session health record the reconciler produces.
type Metrics struct {
	SessionID    string    `json:"session_id"`
	CPUPercent   float64   `json:"cpu_percent"`
	MemoryMB     float64   `json:"memory_mb"`
	ProcStatus   string    `json:"process_status"`
	Class        Class     `json:"class"`
	LastActivity time.Time `json:"last_activity"`
}

// Config holds the idle/working threshold as a single explicit value
// behind an atomic, rather than a package-level mutable global — a CLI
// invocation reads it once per run, but a long-lived GUI process may
// reload config and update it concurrently with in-flight reads.
type Config struct {
	idleThresholdNanos atomic.Int64
}

// NewConfig builds a Config with the given idle threshold.
func NewConfig(idleThreshold time.Duration) *Config {
	c := &Config{}
	c.Set(idleThreshold)
	return c
}

// Set updates the idle threshold atomically.
func (c *Config) Set(d time.Duration) { c.idleThresholdNanos.Store(int64(d)) }

// Get reads the current idle threshold.
func (c *Config) Get() time.Duration { return time.Duration(c.idleThresholdNanos.Load()) }

// Classify applies the Crashed/Unknown/Working/Stuck/Idle rule for one
// session, given its recorded identity, agent-status sidecar (absent
// sidecar reads as "no value"), and the idle threshold.
func Classify(identity store.ProcessIdentity, hasActivity bool, lastActivity time.Time, fromUser bool, now time.Time, idleThreshold time.Duration) Class {
	if identity.PID == 0 || !process.IsRunning(identity.PID) {
		return Crashed
	}
	if !hasActivity {
		return Unknown
	}
	if now.Sub(lastActivity) < idleThreshold {
		return Working
	}
	if fromUser {
		return Stuck
	}
	return Idle
}

// Reconcile computes a Metrics record for one session.
func Reconcile(sess store.Session, agentStatus store.AgentStatusInfo, hasAgentStatus bool, cfg *Config, now time.Time) Metrics {
	class := Classify(sess.Identity, !sess.LastActivity.IsZero(), sess.LastActivity, hasAgentStatus && agentStatus.FromUser, now, cfg.Get())

	m := Metrics{
		SessionID:    sess.SessionID,
		Class:        class,
		LastActivity: sess.LastActivity,
		ProcStatus:   "unknown",
	}

	if sess.Identity.PID != 0 {
		if metrics, err := process.GetMetrics(sess.Identity.PID); err == nil {
			m.CPUPercent = metrics.CPUPercent
			m.MemoryMB = float64(metrics.MemBytes) / (1024 * 1024)
		}
		if info, err := process.GetInfo(sess.Identity.PID); err == nil {
			m.ProcStatus = string(info.Status)
		}
	}
	return m
}

// Snapshot is one point-in-time aggregation over every reconciled
// session, persisted into the day's history file.
type Snapshot struct {
	Timestamp    time.Time      `json:"timestamp"`
	Total        int            `json:"total"`
	ByClass      map[Class]int  `json:"by_class"`
	AverageCPU   float64        `json:"average_cpu"`
	TotalMemoryMB float64       `json:"total_memory_mb"`
}

// Aggregate builds a Snapshot from a set of per-session Metrics.
func Aggregate(metrics []Metrics, now time.Time) Snapshot {
	snap := Snapshot{Timestamp: now, Total: len(metrics), ByClass: map[Class]int{}}
	var cpuSum float64
	for _, m := range metrics {
		snap.ByClass[m.Class]++
		cpuSum += m.CPUPercent
		snap.TotalMemoryMB += m.MemoryMB
	}
	if len(metrics) > 0 {
		snap.AverageCPU = cpuSum / float64(len(metrics))
	}
	return snap
}
