// Package session holds the in-memory table of open TCP sessions.
//
// A Session binds one socket descriptor to its resolved peer endpoint;
// the Registry owns every live Session and preserves allocation order.
// The package does no I/O — socket syscalls live in internal/transport.
package session

import (
	"fmt"
	"net/netip"
)

// ClosedFd is the descriptor sentinel for a session that has no open
// socket (freshly allocated, or allocated but socket creation failed).
const ClosedFd = -1

// Flags is a bitset of session attributes.
type Flags uint32

const (
	// FlagControl marks a session owned by an internal subsystem.
	// close requests must not remove such a session without force.
	FlagControl Flags = 1 << iota
)

// Session is one entry in the Registry: a socket descriptor, the peer
// it is (or was being) connected to, and attribute flags.
//
// The peer is nil until a connect attempt has stored an endpoint, so a
// Session can hold a valid descriptor with no peer (socket created,
// never connected).
type Session struct {
	fd    int
	peer  Peer
	flags Flags
	next  *Session
}

// Fd returns the socket descriptor, or ClosedFd when none is open.
func (s *Session) Fd() int { return s.fd }

// SetFd stores a descriptor.  Owned by the transport layer.
func (s *Session) SetFd(fd int) { s.fd = fd }

// Peer returns the resolved remote endpoint, or nil before any
// connect attempt.
func (s *Session) Peer() Peer { return s.peer }

// SetPeer records the endpoint a connect attempt is targeting.
func (s *Session) SetPeer(p Peer) { s.peer = p }

// Flags returns the session's attribute bits.
func (s *Session) Flags() Flags { return s.flags }

// Next returns the session following s in registry order, or nil when
// s is the last entry.
func (s *Session) Next() *Session { return s.next }

// Peer is the remote endpoint of a session, one variant per address
// family.
type Peer interface {
	// Family identifies the address family of the endpoint.
	Family() Family
	// Port is the destination port in host byte order.
	Port() uint16
	// Addr returns the endpoint address.
	Addr() netip.Addr
}

// Family tags an address family.
type Family int

const (
	FamilyUnspec Family = iota
	FamilyIPv4
	FamilyIPv6
)

func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "inet"
	case FamilyIPv6:
		return "inet6"
	default:
		return "unspec"
	}
}

// Peer4 is an IPv4 endpoint.
type Peer4 struct {
	IP       [4]byte
	DestPort uint16
}

func (p Peer4) Family() Family   { return FamilyIPv4 }
func (p Peer4) Port() uint16     { return p.DestPort }
func (p Peer4) Addr() netip.Addr { return netip.AddrFrom4(p.IP) }

func (p Peer4) String() string {
	return fmt.Sprintf("%s:%d", p.Addr(), p.DestPort)
}

// Peer6 is an IPv6 endpoint.
type Peer6 struct {
	IP       [16]byte
	DestPort uint16
	Zone     uint32
}

func (p Peer6) Family() Family   { return FamilyIPv6 }
func (p Peer6) Port() uint16     { return p.DestPort }
func (p Peer6) Addr() netip.Addr { return netip.AddrFrom16(p.IP) }

func (p Peer6) String() string {
	return fmt.Sprintf("[%s]:%d", p.Addr(), p.DestPort)
}
