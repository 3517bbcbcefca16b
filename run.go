// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package distill

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

// RunOptions controls one distillation run.
type RunOptions struct {
	// Confirm is asked before an existing destination is removed.
	// Nil confirms implicitly, for non-interactive use.
	Confirm func(dst string) (bool, error)
	// DryRun resolves decisions without touching the destination.
	DryRun bool
}

// Distiller walks a source tree and writes its filtered copy.
type Distiller struct {
	logger   *slog.Logger
	resolver *Resolver
	sampler  *Sampler
}

// New compiles cfg into a distiller.
func New(cfg Config, logger *slog.Logger) *Distiller {
	logger = loggerOrDiscard(logger)
	resolver := NewResolver(cfg, logger)

	return &Distiller{
		logger:   logger,
		resolver: resolver,
		sampler:  NewSampler(resolver.Sampling(), logger),
	}
}

// Resolver returns the distiller decision engine.
func (d *Distiller) Resolver() *Resolver {
	return d.resolver
}

// Run distills src into dst.
//
// Fatal errors (bad source root, destination preparation, cancellation) are
// returned with the statistics gathered so far. Per-file failures are logged
// and counted in Stats.Errors without stopping the run.
func (d *Distiller) Run(ctx context.Context, src string, dst string, opts RunOptions) (*Stats, error) {
	stats := NewStats()

	srcRoot, err := resolvePathOrAbs(src)
	if err != nil {
		return stats, fmt.Errorf("%w: %v", ErrSourceRoot, err)
	}

	dstRoot, err := resolveDestination(dst)
	if err != nil {
		return stats, fmt.Errorf("%w: %v", ErrDestinationRoot, err)
	}

	info, err := os.Stat(srcRoot)
	if err != nil {
		return stats, fmt.Errorf("%w: %v", ErrSourceRoot, err)
	}

	if !info.IsDir() {
		return stats, fmt.Errorf("%w: not a directory: %s", ErrSourceRoot, srcRoot)
	}

	d.logger.Info("starting distillation",
		slog.Bool("dry_run", opts.DryRun),
		slog.String("source", srcRoot),
		slog.String("destination", dstRoot))

	if !opts.DryRun {
		if err := prepareDestination(srcRoot, dstRoot, opts.Confirm); err != nil {
			return stats, err
		}
	}

	walkErr := filepath.WalkDir(srcRoot, func(path string, entry fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			if path == srcRoot {
				return fmt.Errorf("%w: %v", ErrSourceRoot, err)
			}

			d.logger.Error("walk failed", slog.String("path", path), slog.Any("error", err))
			stats.Errors++
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if entry.IsDir() {
			// A destination nested in the source tree is never walked.
			if path != srcRoot && path == dstRoot {
				return filepath.SkipDir
			}

			return nil
		}

		if !isRegularFile(path, entry) {
			return nil
		}

		d.processFile(srcRoot, dstRoot, path, opts.DryRun, stats)
		return nil
	})
	if walkErr != nil {
		d.logger.Error("distillation aborted", slog.Any("error", walkErr))
		return stats, walkErr
	}

	d.logger.Info("distillation finished",
		slog.Int("scanned", stats.Scanned),
		slog.Int("copied", stats.Copied),
		slog.Int("sampled", stats.Sampled),
		slog.Int("skipped", stats.Skipped),
		slog.Int("errors", stats.Errors),
		slog.String("written", humanize.IBytes(uint64(max(0, stats.BytesWritten)))))

	return stats, nil
}

// processFile resolves and applies the action for one regular file.
func (d *Distiller) processFile(srcRoot string, dstRoot string, path string, dryRun bool, stats *Stats) {
	stats.Scanned++

	decision := d.resolver.Decide(path, srcRoot)
	rel, err := filepath.Rel(srcRoot, path)
	if err != nil {
		decision = skip(ReasonOutsideRoot)
	}

	rel = filepath.ToSlash(rel)
	if decision.Action == ActionSkip {
		stats.AddSkip(decision.Reason)
		d.logger.Debug("SKIP", slog.String("reason", decision.Reason), slog.String("path", rel))
		return
	}

	if dryRun {
		d.logger.Info("[DRY RUN] "+decision.Action.String(), slog.String("path", rel), slog.String("reason", decision.Reason))
		d.tally(decision.Action, stats)
		return
	}

	target := filepath.Join(dstRoot, filepath.FromSlash(rel))

	switch decision.Action {
	case ActionCopy:
		written, err := copyFile(path, target)
		if err != nil {
			d.logger.Error("copy failed", slog.String("path", rel), slog.Any("error", err))
			stats.Errors++
			return
		}

		stats.BytesWritten += written
		d.logger.Debug("COPIED", slog.String("path", rel), slog.String("size", humanize.IBytes(uint64(written))))
	case ActionSample:
		res, err := d.sampler.Sample(path, target)
		if err != nil {
			d.logger.Error("sampling failed", slog.String("path", rel), slog.Any("error", err))
			stats.Errors++
			return
		}

		stats.BytesWritten += res.BytesWritten
	}

	d.tally(decision.Action, stats)
}

// tally counts one successfully handled COPY or SAMPLE decision.
func (d *Distiller) tally(action Action, stats *Stats) {
	switch action {
	case ActionCopy:
		stats.Copied++
	case ActionSample:
		stats.Sampled++
	}
}

// prepareDestination removes an existing destination after confirmation and recreates it.
func prepareDestination(srcRoot string, dstRoot string, confirm func(string) (bool, error)) error {
	if isPathWithinRoot(dstRoot, srcRoot) {
		return fmt.Errorf("%w: destination %s contains source %s", ErrDestinationRoot, dstRoot, srcRoot)
	}

	_, err := os.Lstat(dstRoot)
	switch {
	case err == nil:
		if confirm != nil {
			ok, err := confirm(dstRoot)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrOverwriteDeclined, err)
			}

			if !ok {
				return ErrOverwriteDeclined
			}
		}

		if err := os.RemoveAll(dstRoot); err != nil {
			return fmt.Errorf("%w: remove %s: %v", ErrDestinationRoot, dstRoot, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %v", ErrDestinationRoot, err)
	}

	if err := os.MkdirAll(dstRoot, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrDestinationRoot, dstRoot, err)
	}

	return nil
}

// resolveDestination returns dst as an absolute path with its parent
// symlinks resolved, so it compares equal to paths seen while walking.
// The final element is kept as is: a symlinked destination is replaced, not followed.
func resolveDestination(dst string) (string, error) {
	abs, err := filepath.Abs(dst)
	if err != nil {
		return "", err
	}

	parent, err := resolvePathOrAbs(filepath.Dir(abs))
	if err != nil {
		return "", err
	}

	return filepath.Join(parent, filepath.Base(abs)), nil
}

// isRegularFile reports whether entry is a regular file, following symlinks.
func isRegularFile(path string, entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}

	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}

	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
