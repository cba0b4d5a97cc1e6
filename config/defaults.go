package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultPort is the destination port used when none is given.
	// The tool grew up around TELNET, and the default stuck.
	DefaultPort = 23

	// DefaultConnTimeout is the per-attempt connect deadline.  Zero
	// preserves the historic behavior: connect blocks until the OS
	// gives up.
	DefaultConnTimeout time.Duration = 0

	// DefaultPrompt is the interpreter prompt.
	DefaultPrompt = "ztcp> "
)
