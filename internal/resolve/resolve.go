// Package resolve turns host names into candidate address lists for
// the connect loop, and peer addresses back into names for listings.
//
// Numeric addresses take a fast path that never touches the network;
// everything else goes through the system resolver.
package resolve

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"strings"

	"ztcp/internal/errors"
	"ztcp/internal/session"
)

// HostEntry is the result of resolving one host within one address
// family: the canonical name, the family and its address width, and
// the raw candidate addresses in resolver order.
type HostEntry struct {
	Name   string
	Family session.Family
	Length int
	Addrs  [][]byte
}

// Lookup resolves host to a HostEntry.  family narrows the lookup;
// FamilyUnspec accepts whatever the resolver returns first.  With
// numericOnly set, host must be an IP literal and no network lookup
// is performed.
func Lookup(ctx context.Context, host string, family session.Family, numericOnly bool) (*HostEntry, error) {
	if addr, err := netip.ParseAddr(host); err == nil {
		return literalEntry(host, addr.Unmap(), family)
	}
	if numericOnly {
		return nil, errors.WrapResolve(host,
			fmt.Errorf("not an IP address (numeric-only resolution)"))
	}

	ips, err := net.DefaultResolver.LookupIP(ctx, network(family), host)
	if err != nil {
		return nil, errors.WrapResolve(host, err)
	}

	entry := &HostEntry{Name: host, Family: family}
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			if family == session.FamilyIPv6 {
				continue
			}
			if entry.Family == session.FamilyUnspec {
				entry.Family = session.FamilyIPv4
			}
			if entry.Family == session.FamilyIPv4 {
				entry.Addrs = append(entry.Addrs, []byte(v4))
			}
			continue
		}
		if family == session.FamilyIPv4 {
			continue
		}
		if entry.Family == session.FamilyUnspec {
			entry.Family = session.FamilyIPv6
		}
		if entry.Family == session.FamilyIPv6 {
			entry.Addrs = append(entry.Addrs, []byte(ip.To16()))
		}
	}
	if len(entry.Addrs) == 0 {
		return nil, errors.WrapResolve(host,
			fmt.Errorf("no %s addresses", family))
	}
	entry.Length = width(entry.Family)
	return entry, nil
}

// ReverseName maps a peer endpoint back to a host name for listings.
// Every failure yields the empty string; results are not cached, each
// call performs a fresh lookup.
func ReverseName(ctx context.Context, p session.Peer) string {
	if p == nil {
		return ""
	}
	names, err := net.DefaultResolver.LookupAddr(ctx, p.Addr().String())
	if err != nil || len(names) == 0 {
		return ""
	}
	return strings.TrimSuffix(names[0], ".")
}

func literalEntry(host string, addr netip.Addr, family session.Family) (*HostEntry, error) {
	switch {
	case addr.Is4():
		if family == session.FamilyIPv6 {
			return nil, errors.WrapResolve(host, fmt.Errorf("not an inet6 address"))
		}
		b := addr.As4()
		return &HostEntry{
			Name:   addr.String(),
			Family: session.FamilyIPv4,
			Length: 4,
			Addrs:  [][]byte{b[:]},
		}, nil
	default:
		if family == session.FamilyIPv4 {
			return nil, errors.WrapResolve(host, fmt.Errorf("not an inet address"))
		}
		b := addr.As16()
		return &HostEntry{
			Name:   addr.String(),
			Family: session.FamilyIPv6,
			Length: 16,
			Addrs:  [][]byte{b[:]},
		}, nil
	}
}

func network(family session.Family) string {
	switch family {
	case session.FamilyIPv4:
		return "ip4"
	case session.FamilyIPv6:
		return "ip6"
	default:
		return "ip"
	}
}

func width(family session.Family) int {
	if family == session.FamilyIPv6 {
		return 16
	}
	return 4
}
