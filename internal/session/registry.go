package session

// Registry is the ordered table of live sessions.  It is an explicitly
// owned object: callers construct one with NewRegistry and thread it
// through the transport layer, rather than sharing package globals.
//
// Sessions are linked in allocation order through their forward link;
// head and tail are kept consistent so Allocate appends in O(1).
// Registry does not close descriptors itself — Drain delegates that to
// the closer supplied by the caller.
type Registry struct {
	head *Session
	tail *Session
	n    int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Head returns the first (oldest) session, or nil when the registry is
// empty.
func (r *Registry) Head() *Session { return r.head }

// Len returns the number of live sessions.
func (r *Registry) Len() int { return r.n }

// Allocate creates a zero-valued session with the descriptor sentinel
// and the given flags, appends it to the tail, and returns it.
func (r *Registry) Allocate(flags Flags) *Session {
	s := &Session{fd: ClosedFd, flags: flags}
	if r.head == nil {
		r.head = s
	} else {
		r.tail.next = s
	}
	r.tail = s
	r.n++
	return s
}

// Delete unlinks target from the registry.  It reports false when
// target is not reachable from head — a stale or foreign reference —
// and leaves the list untouched in that case.
func (r *Registry) Delete(target *Session) bool {
	if r.head == nil || target == nil {
		return false
	}
	if r.head == target {
		r.head = target.next
		if r.head == nil {
			r.tail = nil
		}
		target.next = nil
		r.n--
		return true
	}
	prev := r.head
	for prev.next != nil && prev.next != target {
		prev = prev.next
	}
	if prev.next == nil {
		return false
	}
	prev.next = target.next
	if r.tail == target {
		r.tail = prev
	}
	target.next = nil
	r.n--
	return true
}

// ByDescriptor returns the first session whose descriptor equals fd,
// scanning in allocation order, or nil when no session matches.
func (r *Registry) ByDescriptor(fd int) *Session {
	for s := r.head; s != nil; s = s.next {
		if s.fd == fd {
			return s
		}
	}
	return nil
}

// Drain empties the registry, calling close on every session before it
// is unlinked.  The successor is captured before each delete so a node
// is never revisited.  Draining an empty registry is a no-op.
func (r *Registry) Drain(close func(*Session)) {
	for s := r.head; s != nil; {
		next := s.next
		if close != nil {
			close(s)
		}
		r.Delete(s)
		s = next
	}
}
