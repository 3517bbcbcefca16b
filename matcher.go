// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package distill

import (
	"log/slog"
	"strings"
)

// patternEntry is one compiled file or directory pattern.
type patternEntry struct {
	// glob is nil for literal patterns and for malformed globs.
	glob *globPattern
	// dirGlob is the "<glob>/**" companion for anchored or "**" globs.
	// Nil for right-anchored globs, which are tried against every ancestor instead.
	dirGlob *globPattern
	// literal is the normalized pattern text.
	literal string
	// raw is the source pattern as configured.
	raw string
	// wildcard reports whether literal contains glob meta.
	wildcard bool
	// broken marks malformed globs which never match.
	broken bool
}

// Patterns is an ordered, immutable list of compiled path patterns.
type Patterns struct {
	entries []patternEntry
}

// CompilePatterns compiles raw config patterns.
//
// Empty patterns are dropped. Malformed globs are logged as warnings and
// compiled into entries that never match.
func CompilePatterns(raw []string, logger *slog.Logger) Patterns {
	logger = loggerOrDiscard(logger)

	entries := make([]patternEntry, 0, len(raw))
	for _, src := range raw {
		pat := normalizePattern(src)
		if pat == "" {
			continue
		}

		entry := patternEntry{
			raw:      src,
			literal:  pat,
			wildcard: hasWildcards(pat),
		}

		if entry.wildcard {
			glob, err := compileGlob(pat)
			if err == nil && (glob.spanRE != nil || glob.anchored) {
				entry.dirGlob, err = compileGlob(pat + "/**")
			}

			if err != nil {
				logger.Warn("invalid glob pattern", slog.String("pattern", src), slog.Any("error", err))
				entry.broken = true
			} else {
				entry.glob = glob
			}
		}

		entries = append(entries, entry)
	}

	return Patterns{entries: entries}
}

// Len returns number of compiled patterns, including broken ones.
func (p Patterns) Len() int {
	return len(p.entries)
}

// MatchFile reports whether rel matches any pattern as a file path.
//
// Literal patterns require exact equality with rel, wildcard patterns use glob matching.
func (p Patterns) MatchFile(rel string) bool {
	for i := range p.entries {
		e := &p.entries[i]
		if e.broken {
			continue
		}

		if !e.wildcard {
			if rel == e.literal {
				return true
			}

			continue
		}

		if e.glob.match(rel) {
			return true
		}
	}

	return false
}

// MatchDir reports whether rel lies in a directory described by any pattern.
//
// Literal patterns match by prefix: rel equals the pattern or starts with
// "pattern/". Globs without "**" or a leading "/" match rel or any ancestor
// directory from the right, so "*.egg-info" covers "src/pkg.egg-info/PKG-INFO".
// Other globs match rel itself or with "/**" appended.
func (p Patterns) MatchDir(rel string) bool {
	for i := range p.entries {
		e := &p.entries[i]
		if e.broken {
			continue
		}

		if !e.wildcard {
			if rel == e.literal || strings.HasPrefix(rel, e.literal+"/") {
				return true
			}

			continue
		}

		if e.dirGlob == nil {
			if matchAncestors(e.glob, rel) {
				return true
			}

			continue
		}

		if e.glob.match(rel) || e.dirGlob.match(rel) {
			return true
		}
	}

	return false
}

// matchAncestors reports whether g matches rel or any of its parent directories.
func matchAncestors(g *globPattern, rel string) bool {
	for end := len(rel); end > 0; end = strings.LastIndexByte(rel[:end], '/') {
		if g.match(rel[:end]) {
			return true
		}
	}

	return false
}
