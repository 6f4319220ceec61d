// rsterm - an interactive client for serial-over-TCP gateways.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"rsterm/cmd"
	rerrors "rsterm/internal/errors"
)

func main() {
	// Signals only cancel the context; the session notices and tears
	// down on its own goroutine, restoring the terminal.
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	err := cmd.Execute(ctx, os.Args[1:])
	cancel()
	if err == nil {
		return
	}
	var exit *rerrors.ExitError
	if errors.As(err, &exit) {
		os.Exit(exit.Code)
	}
	fmt.Fprintf(os.Stderr, "rsterm: %v\n", err)
	os.Exit(1)
}
