// Package main is the entry point for the paccu binary.
//
// paccu shows every port of every PulseAudio sink in a full-screen list and
// makes the chosen sink and port the system default.
//
// Usage:
//
//	paccu              # pick an output interactively
//	paccu list         # print outputs, the active one marked with *
//	paccu doctor       # check the audio server and active output detection
//	paccu --version    # print the version and exit
//
// The CLI is constructed in internal/cli and the picker in internal/ui.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/treykane/paccu/internal/cli"
)

func main() {
	// Interrupts cancel any blocking audio server call so the session and
	// the terminal are released before exit.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
