// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package distill

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// countingWriter counts bytes passed to the underlying writer.
type countingWriter struct {
	w io.Writer
	n int64
}

// Write implements io.Writer.
func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// writeFileAtomic writes dst through a temporary sibling file renamed into
// place on success. On any failure the temporary file is removed and dst is
// left untouched.
func writeFileAtomic(dst string, perm fs.FileMode, write func(w io.Writer) error) (written int64, err error) {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create parent dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}

	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	cw := &countingWriter{w: tmp}
	bw := bufio.NewWriter(cw)
	if err = write(bw); err != nil {
		return 0, err
	}

	if err = bw.Flush(); err != nil {
		return 0, fmt.Errorf("flush %s: %w", dst, err)
	}

	if err = tmp.Close(); err != nil {
		return 0, fmt.Errorf("close %s: %w", dst, err)
	}

	if err = os.Chmod(tmpName, perm); err != nil {
		return 0, fmt.Errorf("chmod %s: %w", dst, err)
	}

	if err = os.Rename(tmpName, dst); err != nil {
		return 0, fmt.Errorf("rename %s: %w", dst, err)
	}

	return cw.n, nil
}

// copyFile copies src to dst verbatim, preserving permission bits and modification time.
func copyFile(src string, dst string) (int64, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = in.Close() }()

	written, err := writeFileAtomic(dst, info.Mode().Perm(), func(w io.Writer) error {
		_, err := io.Copy(w, in)
		return err
	})
	if err != nil {
		return 0, err
	}

	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return written, fmt.Errorf("preserve mtime: %w", err)
	}

	return written, nil
}

// openText opens src as lenient UTF-8 text: a leading BOM is dropped and
// invalid byte sequences decode to U+FFFD.
func openText(src string) (io.Reader, func() error, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, nil, fmt.Errorf("open source: %w", err)
	}

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return transform.NewReader(f, decoder), f.Close, nil
}
