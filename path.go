// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package distill

import (
	"os"
	"path/filepath"
	"strings"
)

// normalizePattern normalizes one config pattern to slash-separated form
// without leading "./" and trailing "/".
func normalizePattern(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, `\`) {
		raw = strings.ReplaceAll(raw, `\`, `/`)
	}

	for strings.HasPrefix(raw, "./") {
		raw = raw[2:]
	}

	return strings.TrimRight(raw, "/")
}

// hasWildcards reports whether pattern contains glob meta characters.
func hasWildcards(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

// relPosix returns the slash-separated path of target relative to root.
//
// The relative path is lexical, but containment is also checked after
// resolving symlinks, so a link pointing outside root reports ErrOutsideRoot.
func relPosix(target string, root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}

	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(absRoot, absTarget)
	if err != nil || rel == "." || !isPathWithinRoot(absRoot, absTarget) {
		return "", ErrOutsideRoot
	}

	resolvedRoot, err := resolvePathOrAbs(absRoot)
	if err != nil {
		return "", err
	}

	resolvedTarget, err := resolvePathOrAbs(absTarget)
	if err != nil {
		return "", err
	}

	if !isPathWithinRoot(resolvedRoot, resolvedTarget) {
		return "", ErrOutsideRoot
	}

	return filepath.ToSlash(rel), nil
}

// resolvePathOrAbs resolves symlinks and falls back to absolute path for missing paths.
func resolvePathOrAbs(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return filepath.Abs(resolved)
	}

	abs, absErr := filepath.Abs(path)
	if absErr != nil {
		return "", absErr
	}

	if os.IsNotExist(err) {
		return abs, nil
	}

	return "", err
}

// isPathWithinRoot reports whether target path is inside root path.
func isPathWithinRoot(root string, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}

	if rel == "." {
		return true
	}

	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}

	return !filepath.IsAbs(rel)
}

// pathBase returns final path component using slash separator.
func pathBase(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}

	return path
}

// pathExt returns the lower-cased extension of a slash-separated path, including the dot.
func pathExt(path string) string {
	base := pathBase(path)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 || i == len(base)-1 {
		return ""
	}

	return strings.ToLower(base[i:])
}
