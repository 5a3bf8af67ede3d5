// Package main is the entry point for the stepform CLI.
//
// stepform walks a user through a multi-step form in the terminal,
// validating each step against a JSON Schema before moving on, and hands
// the collected values to a submit handler on the last step.
//
// Commands: init, run, validate, version, completion.
//
// For detailed usage information, run:
//
//	stepform --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/stepform/cmd/stepform/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
