// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package distill

import "strings"

// extensionSet is a set of lower-case extensions with leading dot.
type extensionSet map[string]struct{}

// newExtensionSet normalizes an extension list.
//
// Accepted extension forms:
//   - "csv"
//   - ".csv"
//   - "*.csv"
//
// Empty values are skipped and matching is case-insensitive.
func newExtensionSet(exts []string) extensionSet {
	set := make(extensionSet, len(exts))
	for _, ext := range exts {
		ext = normalizeExtension(ext)
		if ext == "" {
			continue
		}

		set[ext] = struct{}{}
	}

	return set
}

// normalizeExtension converts one extension to ".ext" lower-case form.
func normalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	ext = strings.TrimPrefix(ext, "*")
	ext = strings.TrimLeft(ext, ".")
	if ext == "" {
		return ""
	}

	return "." + strings.ToLower(ext)
}

// has reports whether ext (already lower-cased) is in the set.
func (s extensionSet) has(ext string) bool {
	if ext == "" {
		return false
	}

	_, ok := s[ext]
	return ok
}
