// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package distill

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomicFailureLeavesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dst := filepath.Join(dir, "sub", "out.txt")
	boom := errors.New("boom")

	_, err := writeFileAtomic(dst, 0o644, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	require.ErrorIs(t, err, boom)

	entries, err := os.ReadDir(filepath.Join(dir, "sub"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteFileAtomicReplaces(t *testing.T) {
	t.Parallel()

	dst := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(dst, []byte("old content"), 0o600))

	n, err := writeFileAtomic(dst, 0o640, func(w io.Writer) error {
		_, err := io.WriteString(w, "new")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestCopyFilePreservesModTime(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0o644))

	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, stamp, stamp))

	dst := filepath.Join(dir, "a", "b", "dst.txt")
	n, err := copyFile(src, dst)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(stamp), "mtime %v, want %v", info.ModTime(), stamp)
}
