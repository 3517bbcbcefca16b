// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeeHandlerRespectsLevels(t *testing.T) {
	t.Parallel()

	var info, debug bytes.Buffer
	logger := slog.New(teeHandler{
		slog.NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}).With(slog.String("run", "1"))

	logger.Debug("detail")
	logger.Info("progress")

	assert.NotContains(t, info.String(), "detail")
	assert.Contains(t, info.String(), "progress")
	assert.Contains(t, info.String(), "run=1")
	assert.Contains(t, debug.String(), "detail")
	assert.Contains(t, debug.String(), "progress")
	assert.True(t, logger.Handler().Enabled(context.Background(), slog.LevelDebug))
}

func TestNewLoggerWritesFile(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "logs")
	var console bytes.Buffer

	logger, closeLog, err := newLogger(&console, dir, false)
	require.NoError(t, err)

	logger.Debug("file only")
	logger.Info("both")
	closeLog()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "log_"))

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "file only")
	assert.Contains(t, string(data), "both")
	assert.NotContains(t, console.String(), "file only")
	assert.Contains(t, console.String(), "both")
}
