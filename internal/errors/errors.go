// Package errors provides domain-specific error types for ztcp.
//
// These types carry structured context (operation, descriptor, errno,
// retryability) that lets the command layer map failures onto exit
// statuses and user-visible warnings without string matching.
package errors

import (
	"errors"
	"fmt"
	"net"

	"golang.org/x/sys/unix"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	// ErrNotFound: no session in the table holds the requested descriptor.
	ErrNotFound = errors.New("fd not found in tcp table")

	// ErrAlreadyClosed: the session's descriptor is the closed sentinel,
	// so there is nothing to close.  Reported, never fatal.
	ErrAlreadyClosed = errors.New("session already closed")

	// ErrProtected: the session belongs to an internal subsystem and the
	// close request did not carry force.
	ErrProtected = errors.New("use -f to force closure of a control connection")

	// ErrExhausted: every candidate address failed to connect.
	ErrExhausted = errors.New("address candidates exhausted")
)

// ── Structured error types ───────────────────────────────────────────

// SocketError represents a failed socket-level operation.
type SocketError struct {
	Op        string // "socket", "connect", "close", "setsockopt"
	Fd        int    // descriptor involved (ClosedFd when none)
	Err       error  // underlying errno
	Retryable bool   // whether the same call is worth reissuing
}

func (e *SocketError) Error() string {
	if e.Fd >= 0 {
		return fmt.Sprintf("%s fd %d: %v", e.Op, e.Fd, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SocketError) Unwrap() error { return e.Err }

// ResolveError represents a name-resolution failure with host context.
type ResolveError struct {
	Host string
	Err  error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("host resolution failure: %s: %v", e.Host, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field   string      // config field name
	Value   interface{} // the invalid value (nil if missing)
	Message string      // human-readable explanation
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config: %s", e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf("=%v", e.Value)
	}
	return msg + ": " + e.Message
}

// ── Constructors ─────────────────────────────────────────────────────

// WrapSocket creates a SocketError, detecting retryability from the
// underlying errno.
func WrapSocket(op string, fd int, err error) *SocketError {
	return &SocketError{
		Op:        op,
		Fd:        fd,
		Err:       err,
		Retryable: classifyRetryable(err),
	}
}

// WrapResolve creates a ResolveError.
func WrapResolve(host string, err error) *ResolveError {
	return &ResolveError{Host: host, Err: err}
}

// ── Classification helpers ───────────────────────────────────────────

// IsInterrupted reports whether err is an interrupted system call,
// the one failure the connect loop retries on the same candidate.
func IsInterrupted(err error) bool {
	return errors.Is(err, unix.EINTR)
}

// IsRetryable reports whether err is worth retrying.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var se *SocketError
	if errors.As(err, &se) {
		return se.Retryable
	}
	return classifyRetryable(err)
}

// classifyRetryable inspects errno and resolver error types.
func classifyRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Temporary() //nolint:staticcheck // Temporary is deprecated but still useful
	}
	return false
}

// ── Re-exports for convenience ───────────────────────────────────────
//
// These allow callers to use ztcp/internal/errors as a drop-in
// replacement for the standard library in common operations.

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// New is [errors.New].
func New(text string) error { return errors.New(text) }

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }
