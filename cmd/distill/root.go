// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/woozymasta/distill"
)

// errRunFailed marks a run that completed with per-file errors.
var errRunFailed = errors.New("distillation completed with errors")

// globalOptions are flags shared by every command.
type globalOptions struct {
	configPath  string
	envFile     string
	logDir      string
	ignoreFiles []string
	verbose     bool
	noColor     bool
}

// runOptions are flags of the root distill command.
type runOptions struct {
	dryRun bool
	yes    bool
}

// newRootCmd builds the CLI command tree.
func newRootCmd() *cobra.Command {
	var (
		global globalOptions
		opts   runOptions
	)

	cmd := &cobra.Command{
		Use:   "distill <source_dir> <destination_dir>",
		Short: "Build a filtered, size-bounded copy of a repository",
		Long: `distill copies a repository into a reduced snapshot.

Every file is resolved through a priority cascade:
  Tier 1  whitelist.files         force include (copy or sample)
  Tier 2  blacklist vetoes        files, date stamps, substrings, regex patterns
  Tier 3  whitelist.directories   scope gate, nothing outside it is copied
  Tier 4  sanity checks           blacklisted directories, extensions, size limit

Large CSV, TSV, JSON and JSONL files are sampled down to head and tail excerpts.`,
		Example: `  distill ./my-repo ./distilled-repo
  distill ./my-repo ./distilled-repo --dry-run
  distill ./my-repo ./distilled-repo -c custom_config.yaml -v
  distill ./my-repo ./distilled-repo --ignore-file .distillignore --yes`,
		Version:       version,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDistill(cmd, global, opts, args[0], args[1])
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&global.configPath, "config", "c", "./config.yaml", "path to YAML configuration file")
	pf.StringVar(&global.envFile, "env-file", "", "load DISTILL_* overrides from an env file")
	pf.StringVar(&global.logDir, "log-dir", "./logs", "directory for log files (empty disables file logging)")
	pf.StringArrayVar(&global.ignoreFiles, "ignore-file", nil, "gitignore-like pattern file merged into the rules (repeatable)")
	pf.BoolVarP(&global.verbose, "verbose", "v", false, "enable verbose (debug) console logging")
	pf.BoolVar(&global.noColor, "no-color", false, "disable colored output")

	f := cmd.Flags()
	f.BoolVarP(&opts.dryRun, "dry-run", "d", false, "preview actions without copying")
	f.BoolVarP(&opts.yes, "yes", "y", false, "overwrite an existing destination without asking")

	cmd.AddCommand(newInitCmd(), newExplainCmd(&global))

	return cmd
}

// runDistill executes one distillation run.
func runDistill(cmd *cobra.Command, global globalOptions, opts runOptions, src string, dst string) error {
	if global.noColor {
		color.NoColor = true
	}

	logger, closeLog, err := newLogger(cmd.ErrOrStderr(), global.logDir, global.verbose)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(global, logger)
	if err != nil {
		return err
	}

	runOpts := distill.RunOptions{DryRun: opts.dryRun}
	if !opts.yes {
		runOpts.Confirm = confirmOverwrite(cmd.Context(), cmd.InOrStdin(), cmd.ErrOrStderr())
	}

	stats, err := distill.New(cfg, logger).Run(cmd.Context(), src, dst, runOpts)
	if err != nil {
		return err
	}

	if err := distill.WriteSummary(cmd.OutOrStdout(), stats, !color.NoColor); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	if !stats.Success() {
		return errRunFailed
	}

	return nil
}

// loadConfig loads env overrides, the config file and ignore files.
func loadConfig(global globalOptions, logger *slog.Logger) (distill.Config, error) {
	if global.envFile != "" {
		if err := godotenv.Load(global.envFile); err != nil {
			return distill.Config{}, fmt.Errorf("load env file: %w", err)
		}
	}

	logger.Info("loading configuration", slog.String("path", global.configPath))

	cfg, err := distill.LoadConfig(global.configPath)
	if err != nil {
		return distill.Config{}, err
	}

	if len(global.ignoreFiles) > 0 {
		rules, err := distill.LoadIgnoreFiles(global.ignoreFiles...)
		if err != nil {
			return distill.Config{}, err
		}

		cfg.MergeIgnoreRules(rules)
		logger.Info("merged ignore rules", slog.Int("rules", len(rules)))
	}

	logger.Info("configuration loaded", slog.String("ai_coding_env", cfg.AICodingEnv))

	return cfg, nil
}
