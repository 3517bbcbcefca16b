// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package distill

import (
	"fmt"
	"regexp"
	"strings"
)

// globPattern is one compiled filesystem glob.
type globPattern struct {
	// spanRE matches the whole path for patterns containing "**".
	spanRE *regexp.Regexp
	// source is the normalized pattern text.
	source string
	// segments match trailing path segments for patterns without "**".
	segments []segmentPattern
	// anchored means pattern starts with "/" and must cover the whole path.
	anchored bool
}

// segmentPattern is one precompiled path segment matcher.
type segmentPattern struct {
	// re matches segments with char classes.
	re *regexp.Regexp
	// text is raw segment pattern source.
	text string
	// wildcard reports whether text contains "*" or "?".
	wildcard bool
}

// compileGlob compiles a normalized glob into the cheapest matching strategy.
//
// Patterns without "**" are matched from the right: each pattern segment must
// match the corresponding trailing path segment, so "*.py" matches "src/a.py".
// Patterns with "**" are matched against the whole path and "**" spans any
// number of segments.
func compileGlob(pattern string) (*globPattern, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPattern)
	}

	if err := validateCharClasses(pattern); err != nil {
		return nil, err
	}

	g := &globPattern{
		source:   pattern,
		anchored: strings.HasPrefix(pattern, "/"),
	}

	body := strings.TrimPrefix(pattern, "/")
	if body == "" {
		return nil, fmt.Errorf("%w: empty after normalization (%q)", ErrInvalidPattern, pattern)
	}

	if strings.Contains(body, "**") {
		re, err := regexp.Compile("^" + globToRegex(body, true) + "$")
		if err != nil {
			return nil, fmt.Errorf("%w: compile %q: %v", ErrInvalidPattern, pattern, err)
		}

		g.spanRE = re
		return g, nil
	}

	parts := strings.Split(body, "/")
	g.segments = make([]segmentPattern, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidPattern, pattern)
		}

		seg, err := newSegmentPattern(part)
		if err != nil {
			return nil, fmt.Errorf("%w: compile %q: %v", ErrInvalidPattern, pattern, err)
		}

		g.segments = append(g.segments, seg)
	}

	return g, nil
}

// match reports whether the glob matches a normalized relative path.
func (g *globPattern) match(candidate string) bool {
	if g == nil || candidate == "" {
		return false
	}

	if g.spanRE != nil {
		return g.spanRE.MatchString(candidate)
	}

	// Walk candidate segments from the right without allocating a split slice.
	end := len(candidate)
	for i := len(g.segments) - 1; i >= 0; i-- {
		if end < 0 {
			return false
		}

		start := strings.LastIndexByte(candidate[:end], '/') + 1
		if !g.segments[i].match(candidate[start:end]) {
			return false
		}

		end = start - 1
	}

	// Anchored globs must consume every candidate segment.
	return !g.anchored || end < 0
}

// newSegmentPattern precompiles one segment pattern.
func newSegmentPattern(pattern string) (segmentPattern, error) {
	seg := segmentPattern{
		text:     pattern,
		wildcard: strings.ContainsAny(pattern, "*?"),
	}

	if strings.IndexByte(pattern, '[') < 0 {
		return seg, nil
	}

	re, err := regexp.Compile("^" + globToRegex(pattern, false) + "$")
	if err != nil {
		return segmentPattern{}, err
	}

	seg.re = re
	return seg, nil
}

// match matches one path segment.
func (s segmentPattern) match(segment string) bool {
	if s.re != nil {
		return s.re.MatchString(segment)
	}

	if !s.wildcard {
		return segment == s.text
	}

	return matchSimpleWildcard(s.text, segment)
}

// matchSimpleWildcard matches "*" and "?" wildcard pattern against one segment.
func matchSimpleWildcard(pattern string, input string) bool {
	pIdx, sIdx := 0, 0
	starPattern, starInput := -1, 0

	for sIdx < len(input) {
		if pIdx < len(pattern) && (pattern[pIdx] == '?' || pattern[pIdx] == input[sIdx]) {
			pIdx++
			sIdx++
			continue
		}

		if pIdx < len(pattern) && pattern[pIdx] == '*' {
			starPattern = pIdx
			pIdx++
			starInput = sIdx
			continue
		}

		if starPattern >= 0 {
			// Backtrack: let the last star consume one more byte.
			pIdx = starPattern + 1
			starInput++
			sIdx = starInput
			continue
		}

		return false
	}

	for pIdx < len(pattern) && pattern[pIdx] == '*' {
		pIdx++
	}

	return pIdx == len(pattern)
}

// globToRegex converts glob source to regexp body.
// With spanning set, "**" matches across "/" and "**/" matches zero or more directories.
func globToRegex(pat string, spanning bool) string {
	var b strings.Builder

	for i := 0; i < len(pat); i++ {
		c := pat[i]
		switch {
		case spanning && c == '*' && strings.HasPrefix(pat[i:], "**/"):
			b.WriteString(`(?:.*/)?`)
			i += 2
		case spanning && c == '*' && strings.HasPrefix(pat[i:], "**"):
			b.WriteString(`.*`)
			i++
		case c == '*':
			b.WriteString(`[^/]*`)
		case c == '?':
			b.WriteString(`[^/]`)
		case c == '[':
			i = appendCharClassRegex(pat, i, &b)
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	return b.String()
}

// appendCharClassRegex appends glob char class starting at start and returns its closing index.
// Callers must validate classes first.
func appendCharClassRegex(pat string, start int, b *strings.Builder) int {
	end := findCharClassEnd(pat, start)

	b.WriteByte('[')
	idx := start + 1
	switch {
	case idx < end && pat[idx] == '!':
		b.WriteByte('^')
		idx++
	case idx < end && pat[idx] == '^':
		b.WriteString(`\^`)
		idx++
	}

	if idx < end && pat[idx] == ']' {
		b.WriteString(`\]`)
		idx++
	}

	for ; idx < end; idx++ {
		if pat[idx] == '\\' || pat[idx] == '[' {
			b.WriteByte('\\')
		}

		b.WriteByte(pat[idx])
	}

	b.WriteByte(']')
	return end
}

// validateCharClasses rejects patterns with unterminated or empty "[...]" classes.
func validateCharClasses(pat string) error {
	for i := 0; i < len(pat); i++ {
		if pat[i] != '[' {
			continue
		}

		end := findCharClassEnd(pat, i)
		if end < 0 {
			return fmt.Errorf("%w: unterminated character class in %q", ErrInvalidPattern, pat)
		}

		if strings.Contains(pat[i:end], "/") {
			return fmt.Errorf("%w: character class spans separator in %q", ErrInvalidPattern, pat)
		}

		i = end
	}

	return nil
}

// findCharClassEnd locates closing bracket for a glob char class.
func findCharClassEnd(pat string, start int) int {
	idx := start + 1
	if idx < len(pat) && (pat[idx] == '!' || pat[idx] == '^') {
		idx++
	}

	if idx < len(pat) && pat[idx] == ']' {
		idx++
	}

	for ; idx < len(pat); idx++ {
		if pat[idx] == ']' {
			return idx
		}
	}

	return -1
}
