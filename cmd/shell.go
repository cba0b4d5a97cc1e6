package cmd

// shell.go - the interactive command interpreter.  One session table
// lives for the whole run, so connections opened here stay usable by
// later commands, exactly what a one-shot invocation cannot offer.

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"ztcp/config"
	"ztcp/internal/core"
)

// runShell reads commands line by line until EOF, exit, or context
// cancellation.  Command failures are reported and the loop continues;
// only a read error aborts it.  The prompt is printed only when
// interactive (stdin is a terminal).
func runShell(ctx context.Context, app *core.App, cfg *config.Config, in io.Reader, out io.Writer, interactive bool) error {
	sc := bufio.NewScanner(in)

	for {
		if interactive {
			fmt.Fprint(out, config.DefaultPrompt)
		}
		if !sc.Scan() {
			break
		}
		if ctx.Err() != nil {
			return nil
		}

		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp(out)
		case "list":
			app.List(ctx)
		case "stats":
			app.Stats()
		case "open":
			runOpen(ctx, app, cfg, fields[1:])
		case "close":
			runClose(app, fields[1:])
		default:
			app.Logger.Error("unknown command %q (try help)", fields[0])
		}
	}
	return sc.Err()
}

func runOpen(ctx context.Context, app *core.App, cfg *config.Config, args []string) {
	if len(args) < 1 || len(args) > 2 {
		app.Logger.Error("usage: open <host> [<port>]")
		return
	}
	port := cfg.Port
	if len(args) == 2 {
		p, err := config.ParsePort(args[1])
		if err != nil {
			app.Logger.Error("%v", err)
			return
		}
		port = p
	}
	if err := app.Open(ctx, args[0], port); err != nil {
		app.Logger.Error("%v", err)
	}
}

func runClose(app *core.App, args []string) {
	force := false
	if len(args) > 0 && args[0] == "-f" {
		force = true
		args = args[1:]
	}

	switch len(args) {
	case 0:
		app.CloseAll()
	case 1:
		fd, err := config.ParseFd(args[0])
		if err != nil {
			app.Logger.Error("%v", err)
			return
		}
		if err := app.Close(fd, force); err != nil {
			app.Logger.Error("%v", err)
		}
	default:
		app.Logger.Error("usage: close [-f] [<fd>]")
	}
}

func shellHelp(out io.Writer) {
	fmt.Fprint(out, `Commands:
  open <host> [<port>]   Connect and register the descriptor
  list                   List open sessions
  close [-f] [<fd>]      Close one session (-f forces control sessions),
                         or every session when no fd is given
  stats                  Show table statistics
  help                   Show this help
  exit                   Drain the table and quit
`)
}
