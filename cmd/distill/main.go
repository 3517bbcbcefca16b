// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

// Command distill builds a filtered, size-bounded copy of a repository tree.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/woozymasta/distill"
)

// Process exit codes.
const (
	exitSuccess   = 0
	exitFailure   = 1
	exitCancelled = 130
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

// run executes the root command and maps its error to an exit code.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, errInterrupted):
		fmt.Fprintln(os.Stderr, "Operation cancelled by user")
		return exitCancelled
	case errors.Is(err, distill.ErrOverwriteDeclined):
		fmt.Fprintln(os.Stderr, "Operation cancelled by user.")
		return exitFailure
	case errors.Is(err, errRunFailed):
		return exitFailure
	default:
		_, _ = color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}
}
