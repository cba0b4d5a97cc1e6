//go:build unix

package transport

import (
	"context"

	"golang.org/x/sys/unix"

	"ztcp/internal/errors"
	"ztcp/internal/resolve"
	"ztcp/internal/retry"
	"ztcp/internal/session"
)

// OpenSocket allocates a session in the registry, then creates a native
// socket and stores its descriptor.  On syscall failure the session
// stays registered with the closed sentinel and the error is returned;
// the caller decides whether to delete the half-allocated entry.
func (t *Table) OpenSocket(domain, typ, proto int, flags session.Flags) (*session.Session, error) {
	s := t.reg.Allocate(flags)

	fd, err := unix.Socket(domain, typ, proto)
	if err != nil {
		return s, errors.WrapSocket("socket", session.ClosedFd, err)
	}
	s.SetFd(fd)
	t.metrics.SessionOpened()

	// Deliver urgent data in-band, as the original TELNET-era tool did.
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_OOBINLINE, 1); err != nil {
		t.log.Debug("setsockopt SO_OOBINLINE fd %d: %v", fd, err)
	}
	return s, nil
}

// OpenStream opens a stream socket for the given address family.
func (t *Table) OpenStream(family session.Family, flags session.Flags) (*session.Session, error) {
	domain := unix.AF_INET
	if family == session.FamilyIPv6 {
		domain = unix.AF_INET6
	}
	return t.OpenSocket(domain, unix.SOCK_STREAM, 0, flags)
}

// Connect stores the peer endpoint built from the resolved raw address
// into the session and issues one blocking connect on its descriptor.
// The raw result is returned; interrupted-call retry is the caller's
// loop (see ConnectHost).
func (t *Table) Connect(s *session.Session, addr []byte, family session.Family, port int) error {
	if t.ConnectTimeout > 0 {
		tv := unix.NsecToTimeval(t.ConnectTimeout.Nanoseconds())
		if err := unix.SetsockoptTimeval(s.Fd(), unix.SOL_SOCKET, unix.SO_SNDTIMEO, &tv); err != nil {
			t.log.Debug("setsockopt SO_SNDTIMEO fd %d: %v", s.Fd(), err)
		}
	}

	var sa unix.Sockaddr
	switch family {
	case session.FamilyIPv6:
		peer := session.Peer6{DestPort: uint16(port)}
		copy(peer.IP[:], addr)
		s.SetPeer(peer)
		sa = &unix.SockaddrInet6{Port: port, Addr: peer.IP}
	default:
		peer := session.Peer4{DestPort: uint16(port)}
		copy(peer.IP[:], addr)
		s.SetPeer(peer)
		sa = &unix.SockaddrInet4{Port: port, Addr: peer.IP}
	}

	if err := unix.Connect(s.Fd(), sa); err != nil {
		return errors.WrapSocket("connect", s.Fd(), err)
	}
	return nil
}

// ConnectHost runs the connect protocol against a resolved host: each
// candidate address is attempted in resolver order, an interrupted
// call retries the same candidate, any other failure advances to the
// next, and the first success wins.  When the list is exhausted the
// last error is returned and the session stays allocated for the
// caller to dispose of.
func (t *Table) ConnectHost(ctx context.Context, s *session.Session, he *resolve.HostEntry, port int) error {
	var last error
	for _, addr := range he.Addrs {
		if len(addr) != he.Length {
			t.log.Warn("address length mismatch")
		}

		err := retry.OnInterrupt(ctx, errors.IsInterrupted, func(int) error {
			return t.Connect(s, addr, he.Family, port)
		})
		if err == nil {
			t.metrics.Connected()
			return nil
		}
		last = err
		t.log.Debug("candidate %v failed: %v", addr, err)
	}

	t.metrics.ConnectFailed()
	if last == nil {
		last = errors.ErrExhausted
	}
	return last
}

// Close closes the session's descriptor.  A session whose descriptor
// is already the closed sentinel reports a failure: there is nothing
// to close.  The descriptor is deliberately NOT reset after a
// successful close, so a second Close on the same session fails — the
// behavior callers and tests depend on.  The session itself stays in
// the registry until deleted.
func (t *Table) Close(s *session.Session) error {
	if s.Fd() == session.ClosedFd {
		return errors.ErrAlreadyClosed
	}

	if err := unix.Close(s.Fd()); err != nil {
		t.log.WarnErr("connection close failed", err)
		return errors.WrapSocket("close", s.Fd(), err)
	}
	t.metrics.SessionClosed()
	return nil
}
