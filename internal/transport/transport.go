//go:build unix

// Package transport is the socket layer of the session table.  It
// creates raw descriptors, runs the resolve-and-connect protocol, and
// closes descriptors, recording every lifecycle step in the registry
// it is bound to.
//
// The registry never performs I/O itself; every syscall lives here.
// The package is unix-only: descriptors are handed straight to the
// caller, which has no portable meaning elsewhere.
package transport

import (
	"time"

	"ztcp/internal/metrics"
	"ztcp/internal/session"
	"ztcp/util"
)

// Table couples a session registry with the socket syscall layer.
// All connection operations go through a Table so that bookkeeping and
// I/O cannot drift apart.
type Table struct {
	reg     *session.Registry
	log     *util.Logger
	metrics *metrics.Collector

	// ConnectTimeout bounds each blocking connect attempt.  Zero means
	// no deadline, matching the historic behavior of the tool.
	ConnectTimeout time.Duration
}

// NewTable returns a Table bound to its own empty registry.
func NewTable(log *util.Logger, mc *metrics.Collector) *Table {
	return &Table{
		reg:     session.NewRegistry(),
		log:     log,
		metrics: mc,
	}
}

// Registry exposes the underlying session registry for traversal,
// lookup, and entry disposal.
func (t *Table) Registry() *session.Registry { return t.reg }

// CleanupAll closes and unlinks every session, leaving the registry
// empty.  Close failures are ignored; teardown must always complete.
// Safe to call on an empty or already-drained table.
func (t *Table) CleanupAll() {
	if t.reg.Len() == 0 {
		return
	}
	t.reg.Drain(func(s *session.Session) {
		_ = t.Close(s)
	})
	t.metrics.Drained()
}
