// ztcp - an interactive table of outbound TCP connections, tracked by
// file descriptor.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ztcp/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "ztcp: %v\n", err)
		os.Exit(1)
	}
}
