// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package distill

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// IgnoreRule is one pattern read from an ignore file.
type IgnoreRule struct {
	// Pattern is a file path or glob relative to the repository root.
	Pattern string `json:"pattern" yaml:"pattern"`
	// Include marks "!"-negated lines which force-include the file.
	Include bool `json:"include,omitempty" yaml:"include,omitempty"`
}

// ParseIgnoreRules parses gitignore-like rules from reader.
//
// Semantics:
// - blank lines and comments are ignored
// - "!" creates include rule (merged into whitelist.files)
// - plain lines create exclude rule (merged into blacklist.files)
// - "\#" and "\!" escape leading comment/negation tokens
func ParseIgnoreRules(r io.Reader) ([]IgnoreRule, error) {
	s := bufio.NewScanner(r)
	rules := make([]IgnoreRule, 0, 16)

	for s.Scan() {
		line := trimTrailingSpaces(strings.TrimRight(s.Text(), "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, `\#`) {
			line = line[1:]
		}

		include := false
		if strings.HasPrefix(line, "!") {
			include = true
			line = line[1:]
		} else if strings.HasPrefix(line, `\!`) {
			line = line[1:]
		}

		if line == "" {
			continue
		}

		rules = append(rules, IgnoreRule{Pattern: line, Include: include})
	}

	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scan ignore rules: %w", err)
	}

	return rules, nil
}

// LoadIgnoreFiles reads and merges ignore rules from files in the given order.
func LoadIgnoreFiles(paths ...string) ([]IgnoreRule, error) {
	out := make([]IgnoreRule, 0, len(paths)*8)
	for _, path := range paths {
		rules, err := loadIgnoreFile(path)
		if err != nil {
			return nil, err
		}

		out = append(out, rules...)
	}

	return out, nil
}

// loadIgnoreFile reads and parses rules from one file.
func loadIgnoreFile(path string) ([]IgnoreRule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ignore file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rules, err := ParseIgnoreRules(f)
	if err != nil {
		return nil, fmt.Errorf("parse ignore file %s: %w", path, err)
	}

	return rules, nil
}

// trimTrailingSpaces removes trailing spaces unless escaped by "\".
func trimTrailingSpaces(s string) string {
	for len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == '\t') {
		if len(s) >= 2 && s[len(s)-2] == '\\' {
			s = s[:len(s)-2] + s[len(s)-1:]
			break
		}

		s = s[:len(s)-1]
	}

	return s
}
