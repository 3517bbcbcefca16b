// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/woozymasta/distill"
)

// newInitCmd builds the command writing a starter configuration file.
func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [config_path]",
		Short: "Write a starter configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "./config.yaml"
			if len(args) == 1 {
				path = args[0]
			}

			flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
			if !force {
				flags |= os.O_EXCL
			}

			f, err := os.OpenFile(path, flags, 0o644)
			if err != nil {
				if errors.Is(err, fs.ErrExist) {
					return fmt.Errorf("%s already exists, use --force to overwrite", path)
				}

				return fmt.Errorf("create config: %w", err)
			}

			if err := distill.WriteConfig(f, distill.StarterConfig()); err != nil {
				_ = f.Close()
				return err
			}

			if err := f.Close(); err != nil {
				return fmt.Errorf("close config: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}
