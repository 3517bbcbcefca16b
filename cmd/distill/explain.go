// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/woozymasta/distill"
)

// newExplainCmd builds the command printing cascade decisions without copying.
func newExplainCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <source_dir> <path>...",
		Short: "Show which tier decides each path",
		Example: `  distill explain ./my-repo src/main.go data/big.csv
  distill explain ./my-repo -c custom_config.yaml node_modules/lib/README.md`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := newLogger(cmd.ErrOrStderr(), "", global.verbose)
			if err != nil {
				return err
			}
			defer closeLog()

			cfg, err := loadConfig(*global, logger)
			if err != nil {
				return err
			}

			resolver := distill.NewResolver(cfg, logger)
			root := args[0]

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, p := range args[1:] {
				target := p
				if !filepath.IsAbs(target) {
					target = filepath.Join(root, filepath.FromSlash(p))
				}

				d := resolver.Decide(target, root)
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Action, d.Reason, p)
			}

			return tw.Flush()
		},
	}
}
