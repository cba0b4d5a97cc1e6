// Package config defines the runtime configuration for ztcp and
// provides parsing helpers for ports and descriptor arguments.
package config

import (
	"fmt"
	"strconv"
	"time"
)

// TargetFdUnset means no descriptor argument was given to close mode;
// the whole table is drained instead of one entry.
const TargetFdUnset = -1

// Config holds every tuneable for one ztcp invocation.
type Config struct {
	// ── Command ──────────────────────────────────────────────────────
	Host      string
	Port      int  // destination port (DefaultPort when omitted)
	CloseMode bool // -c: close instead of open
	TargetFd  int  // descriptor argument to -c, TargetFdUnset if absent
	Force     bool // -f: override control-session protection

	// ── Resolution ───────────────────────────────────────────────────
	NumericOnly bool // -n: IP literals only, no DNS
	IPv6        bool // -6: resolve and connect over IPv6

	// ── Connection ───────────────────────────────────────────────────
	Timeout time.Duration // -w: per-attempt connect deadline, 0 = none

	// ── Output / mode ────────────────────────────────────────────────
	Verbose     int
	Interactive bool // -i: run the command interpreter
}

// New returns a Config with the unset-descriptor sentinel in place.
func New() *Config {
	return &Config{Port: DefaultPort, TargetFd: TargetFdUnset}
}

// ── Parsers ──────────────────────────────────────────────────────────

// ParsePort accepts a numeric port and validates its range.
func ParsePort(spec string) (int, error) {
	port, err := strconv.Atoi(spec)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q", spec)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range 1-65535", port)
	}
	return port, nil
}

// ParseFd accepts a nonnegative descriptor number.
func ParseFd(spec string) (int, error) {
	fd, err := strconv.Atoi(spec)
	if err != nil || fd < 0 {
		return 0, fmt.Errorf("invalid file descriptor %q", spec)
	}
	return fd, nil
}

// ── Validation ───────────────────────────────────────────────────────

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", c.Port)
	}
	if c.TargetFd != TargetFdUnset && c.TargetFd < 0 {
		return fmt.Errorf("file descriptor must be nonnegative")
	}
	if c.Interactive && c.CloseMode {
		return fmt.Errorf("-i and -c are mutually exclusive")
	}
	if c.Interactive && c.Host != "" {
		return fmt.Errorf("-i takes no host argument")
	}
	if c.CloseMode && c.Host != "" {
		return fmt.Errorf("-c takes a file descriptor, not a host")
	}
	return nil
}
