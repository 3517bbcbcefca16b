// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// errInterrupted reports an interrupt received while waiting for confirmation.
var errInterrupted = errors.New("interrupted")

// confirmOverwrite returns a prompt asking whether an existing destination may be removed.
// Only "y" and "yes" confirm; EOF declines; context cancellation aborts the run.
func confirmOverwrite(ctx context.Context, in io.Reader, out io.Writer) func(string) (bool, error) {
	warn := color.New(color.FgYellow, color.Bold)

	return func(dst string) (bool, error) {
		_, _ = warn.Fprintf(out, "\nWARNING: Destination directory exists: %s\n", dst)
		_, _ = fmt.Fprint(out, "All contents will be deleted. Continue? (yes/no): ")

		answer := make(chan string, 1)
		go func() {
			line, err := bufio.NewReader(in).ReadString('\n')
			if err != nil && line == "" {
				answer <- ""
				return
			}

			answer <- line
		}()

		select {
		case <-ctx.Done():
			_, _ = fmt.Fprintln(out)
			return false, errInterrupted
		case line := <-answer:
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "y", "yes":
				return true, nil
			default:
				return false, nil
			}
		}
	}
}
