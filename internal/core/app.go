// Package core is the orchestration layer.  It drives the resolve,
// connect, list, and close flows against one session table and owns
// the mapping from operation outcomes to user-visible status.
//
// Architecture layers (bottom → top):
//
//	session → transport → core → cmd (CLI / interpreter)
//
// Nothing below this package writes to stdout; warnings go through the
// logger, listings and status lines through the App's writer.
package core

import (
	"context"
	"fmt"
	"io"
	"os"

	"ztcp/config"
	"ztcp/internal/errors"
	"ztcp/internal/metrics"
	"ztcp/internal/resolve"
	"ztcp/internal/session"
	"ztcp/internal/transport"
	"ztcp/util"
)

// App executes table commands.  One App owns one session table for the
// life of the process; Shutdown drains it unconditionally.
type App struct {
	Table   *transport.Table
	Logger  *util.Logger
	Metrics *metrics.Collector

	// Family selects the lookup address family for Open.
	Family session.Family
	// NumericOnly restricts resolution to IP literals.
	NumericOnly bool

	// Out defaults to os.Stdout when nil.  Override in tests.
	Out io.Writer
}

// NewApp builds an App from the configuration.
func NewApp(cfg *config.Config, logger *util.Logger) *App {
	mc := metrics.New()
	tbl := transport.NewTable(logger, mc)
	tbl.ConnectTimeout = cfg.Timeout

	family := session.FamilyIPv4
	if cfg.IPv6 {
		family = session.FamilyIPv6
	}

	return &App{
		Table:       tbl,
		Logger:      logger,
		Metrics:     mc,
		Family:      family,
		NumericOnly: cfg.NumericOnly,
	}
}

func (a *App) out() io.Writer {
	if a.Out != nil {
		return a.Out
	}
	return os.Stdout
}

// Open resolves host, opens a socket, and runs the candidate connect
// loop.  Port defaults are the caller's concern.  A resolution or
// socket-creation failure is returned as an error; connect exhaustion
// is only warned about, leaving the session in the table for later
// disposal or retry.
func (a *App) Open(ctx context.Context, host string, port int) error {
	he, err := resolve.Lookup(ctx, host, a.Family, a.NumericOnly)
	if err != nil {
		a.Metrics.ResolveFailed()
		a.Metrics.RecordError(err.Error())
		return err
	}
	a.Logger.Verbose("resolved %s to %d %s candidate(s)", host, len(he.Addrs), he.Family)

	s, err := a.Table.OpenStream(he.Family, 0)
	if err != nil {
		a.Metrics.RecordError(err.Error())
		// The half-allocated session must not linger in the table.
		a.Table.Registry().Delete(s)
		return fmt.Errorf("socket creation failed: %w", err)
	}

	if err := a.Table.ConnectHost(ctx, s, he, port); err != nil {
		a.Logger.WarnErr("connection failed", err)
		a.Metrics.RecordError(err.Error())
		return nil
	}

	fmt.Fprintf(a.out(), "%s:%d is now on fd %d\n", host, port, s.Fd())
	return nil
}

// List prints every session holding an open descriptor, reverse
// resolving each peer on the fly.  Sessions whose peer cannot be named
// are shown as UNKNOWN; control sessions carry a trailing marker.
func (a *App) List(ctx context.Context) {
	for s := a.Table.Registry().Head(); s != nil; s = s.Next() {
		if s.Fd() == session.ClosedFd {
			continue
		}

		name := resolve.ReverseName(ctx, s.Peer())
		if name == "" {
			name = "UNKNOWN"
		}
		var port uint16
		if p := s.Peer(); p != nil {
			port = p.Port()
		}
		suffix := ""
		if s.Flags()&session.FlagControl != 0 {
			suffix = " CTRL"
		}
		fmt.Fprintf(a.out(), "%s:%d is on fd %d%s\n", name, port, s.Fd(), suffix)
	}
}

// Close looks up a session by descriptor and closes and deletes it.
// Control sessions refuse to close without force, with no state
// mutation.  A close syscall failure is reported by the transport but
// does not keep the session in the table.
func (a *App) Close(fd int, force bool) error {
	s := a.Table.Registry().ByDescriptor(fd)
	if s == nil {
		a.Metrics.RecordError(errors.ErrNotFound.Error())
		return errors.ErrNotFound
	}
	if s.Flags()&session.FlagControl != 0 && !force {
		a.Metrics.RecordError(errors.ErrProtected.Error())
		return errors.ErrProtected
	}

	_ = a.Table.Close(s)
	a.Table.Registry().Delete(s)
	return nil
}

// CloseAll drains the whole table.
func (a *App) CloseAll() {
	a.Table.CleanupAll()
}

// Stats prints the metrics snapshot.
func (a *App) Stats() {
	fmt.Fprintln(a.out(), a.Metrics.JSON())
}

// Shutdown is the unconditional teardown hook: every remaining session
// is closed and freed regardless of what ran before.
func (a *App) Shutdown() {
	a.Table.CleanupAll()
}
