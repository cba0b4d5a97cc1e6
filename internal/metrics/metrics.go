// Package metrics provides lightweight counters for tracking what the
// session table has done over the life of the process.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime statistics of the session table.
// A nil Collector is safe to use — all methods become no-ops.
type Collector struct {
	sessionsOpened  atomic.Int64 // sockets created and registered
	sessionsClosed  atomic.Int64 // descriptors handed to close
	connects        atomic.Int64 // successful connects
	connectFailures atomic.Int64 // candidate lists exhausted
	resolveFailures atomic.Int64
	drains          atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	lastError    time.Time
	lastErrorMsg string
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Session metrics ──────────────────────────────────────────────────

// SessionOpened records a socket descriptor entering the table.
func (c *Collector) SessionOpened() {
	if c == nil {
		return
	}
	c.sessionsOpened.Add(1)
}

// SessionClosed records a descriptor being handed to close.
func (c *Collector) SessionClosed() {
	if c == nil {
		return
	}
	c.sessionsClosed.Add(1)
}

// Connected records a successful connect.
func (c *Collector) Connected() {
	if c == nil {
		return
	}
	c.connects.Add(1)
}

// ConnectFailed records an exhausted candidate list.
func (c *Collector) ConnectFailed() {
	if c == nil {
		return
	}
	c.connectFailures.Add(1)
}

// ResolveFailed records a name-resolution failure.
func (c *Collector) ResolveFailed() {
	if c == nil {
		return
	}
	c.resolveFailures.Add(1)
}

// Drained records a full table teardown.
func (c *Collector) Drained() {
	if c == nil {
		return
	}
	c.drains.Add(1)
}

// SessionsOpened returns the lifetime count of registered sockets.
func (c *Collector) SessionsOpened() int64 {
	if c == nil {
		return 0
	}
	return c.sessionsOpened.Load()
}

// SessionsClosed returns the lifetime count of closed descriptors.
func (c *Collector) SessionsClosed() int64 {
	if c == nil {
		return 0
	}
	return c.sessionsClosed.Load()
}

// Connects returns the number of successful connects.
func (c *Collector) Connects() int64 {
	if c == nil {
		return 0
	}
	return c.connects.Load()
}

// ── Error tracking ───────────────────────────────────────────────────

// RecordError stores the most recent failure message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime           string `json:"uptime"`
	SessionsOpened   int64  `json:"sessions_opened"`
	SessionsClosed   int64  `json:"sessions_closed"`
	Connects         int64  `json:"connects"`
	ConnectFailures  int64  `json:"connect_failures"`
	ResolveFailures  int64  `json:"resolve_failures"`
	Drains           int64  `json:"drains"`
	LastError        string `json:"last_error,omitempty"`
	LastErrorMessage string `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:           time.Since(c.startTime).Truncate(time.Second).String(),
		SessionsOpened:   c.sessionsOpened.Load(),
		SessionsClosed:   c.sessionsClosed.Load(),
		Connects:         c.connects.Load(),
		ConnectFailures:  c.connectFailures.Load(),
		ResolveFailures:  c.resolveFailures.Load(),
		Drains:           c.drains.Load(),
		LastErrorMessage: c.lastErrorMsg,
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
	}
	return s
}

// JSON returns the snapshot as an indented JSON string.
func (c *Collector) JSON() string {
	s := c.Snapshot()
	data, _ := json.MarshalIndent(s, "", "  ")
	return string(data)
}
