// Package cmd wires up the CLI flags and dispatches to the session
// table commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"ztcp/config"
	"ztcp/internal/core"
	"ztcp/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X ztcp/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args and runs the appropriate ztcp command.  The
// session table is drained unconditionally before returning, whatever
// ran or failed beforehand.
func Execute(ctx context.Context, args []string) error {
	cfg := config.New()
	config.LoadFromEnv(cfg)

	fs := flag.NewFlagSet("ztcp", flag.ContinueOnError)

	// ── commands ─────────────────────────────────────────────────
	fs.BoolVarP(&cfg.CloseMode, "close", "c", cfg.CloseMode, "Close a connection (whole table when no fd given)")
	fs.BoolVarP(&cfg.Force, "force", "f", cfg.Force, "Force closure of control connections")
	fs.BoolVarP(&cfg.Interactive, "interactive", "i", false, "Run the command interpreter")

	// ── connection ───────────────────────────────────────────────
	fs.BoolVarP(&cfg.NumericOnly, "numeric", "n", cfg.NumericOnly, "Numeric-only, no DNS resolution")
	fs.BoolVarP(&cfg.IPv6, "inet6", "6", cfg.IPv6, "Resolve and connect over IPv6")

	var timeoutSec int
	fs.IntVarP(&timeoutSec, "timeout", "w", 0, "Connect timeout in seconds")

	// ── output ───────────────────────────────────────────────────
	//
	// Count flags reset their target on registration, which would
	// discard a ZTCP_VERBOSE overlay; stash and restore it.
	envVerbose := cfg.Verbose
	fs.CountVarP(&cfg.Verbose, "verbose", "v", "Increase verbosity (repeatable)")

	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("ztcp %s\n", version)
		return nil
	}

	if timeoutSec > 0 {
		cfg.Timeout = time.Duration(timeoutSec) * time.Second
	}
	if cfg.Verbose == 0 {
		cfg.Verbose = envVerbose
	}

	// ── positional arguments ─────────────────────────────────────
	if err := parsePositional(cfg, fs.Args()); err != nil {
		return err
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}

	// ── build components ─────────────────────────────────────────
	//
	// Warnings must reach the user by default, so the flag count sits
	// on top of the normal level.
	logger := util.NewLogger("ztcp", cfg.Verbose+1)

	app := core.NewApp(cfg, logger)
	defer app.Shutdown()

	onTerminal := term.IsTerminal(int(os.Stdin.Fd()))

	switch {
	case cfg.Interactive:
		return runShell(ctx, app, cfg, os.Stdin, os.Stdout, onTerminal)

	case cfg.CloseMode:
		if cfg.TargetFd == config.TargetFdUnset {
			app.CloseAll()
			return nil
		}
		return app.Close(cfg.TargetFd, cfg.Force)

	case cfg.Host == "":
		// A bare invocation on a terminal gets the interpreter, where
		// the table outlives individual commands; on a pipe it lists
		// the (necessarily empty) table and exits, as the original did.
		if onTerminal {
			return runShell(ctx, app, cfg, os.Stdin, os.Stdout, true)
		}
		app.List(ctx)
		return nil

	default:
		return app.Open(ctx, cfg.Host, cfg.Port)
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func parsePositional(cfg *config.Config, remaining []string) error {
	if cfg.CloseMode {
		switch len(remaining) {
		case 0: // ztcp -c: drain the whole table
		case 1:
			fd, err := config.ParseFd(remaining[0])
			if err != nil {
				return err
			}
			cfg.TargetFd = fd
		default:
			return fmt.Errorf("too many arguments for close mode")
		}
		return nil
	}

	// Open mode: host [port]
	switch len(remaining) {
	case 0: // list or interpreter
	case 1:
		cfg.Host = remaining[0]
	case 2:
		cfg.Host = remaining[0]
		port, err := config.ParsePort(remaining[1])
		if err != nil {
			return fmt.Errorf("port: %w", err)
		}
		cfg.Port = port
	default:
		return fmt.Errorf("too many arguments")
	}
	return nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `ztcp – TCP session table v%s

Opens outbound TCP connections and tracks them in a per-process table
of file descriptors.

Usage:
  ztcp <host> [<port>]          Connect (port defaults to %d)
  ztcp                          List open sessions
  ztcp -c [<fd>]                Close one session, or every session
  ztcp -i                       Run the command interpreter

Options:
`, version, config.DefaultPort)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  ztcp example.com 7000         Open a connection
  ztcp -c 5                     Close the session on fd 5
  ztcp -c -f 5                  Close it even if it is a control session
  ztcp -w 10 example.com        Connect with a 10 second deadline
`)
}
