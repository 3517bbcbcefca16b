// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package distill

import (
	"log/slog"
	"regexp"
	"strings"
	"time"
)

// dateStampLayout is the YYYYMMDD layout checked by DateStampVeto.
const dateStampLayout = "20060102"

// DateStampVeto detects embedded YYYYMMDD calendar dates in bare filenames.
type DateStampVeto struct {
	enabled bool
}

// NewDateStampVeto creates a date-stamp veto. Disabled vetoes never match.
func NewDateStampVeto(enabled bool) DateStampVeto {
	return DateStampVeto{enabled: enabled}
}

// Find returns the first run of exactly eight digits, not adjacent to other
// digits, that parses as a valid calendar date.
func (v DateStampVeto) Find(name string) (string, bool) {
	if !v.enabled {
		return "", false
	}

	for i := 0; i < len(name); {
		if !isDigit(name[i]) {
			i++
			continue
		}

		j := i
		for j < len(name) && isDigit(name[j]) {
			j++
		}

		if j-i == 8 && validDateStamp(name[i:j]) {
			return name[i:j], true
		}

		i = j
	}

	return "", false
}

// validDateStamp reports whether stamp is a real YYYYMMDD date with year >= 1.
func validDateStamp(stamp string) bool {
	if stamp[:4] == "0000" {
		return false
	}

	_, err := time.Parse(dateStampLayout, stamp)
	return err == nil
}

// isDigit reports whether c is an ASCII digit.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// SubstringVeto matches blacklisted substrings case-insensitively.
type SubstringVeto struct {
	needles []substringNeedle
}

// substringNeedle keeps configured casing for reason strings.
type substringNeedle struct {
	raw   string
	upper string
}

// NewSubstringVeto builds a substring veto. Blank entries are ignored.
func NewSubstringVeto(substrings []string) SubstringVeto {
	needles := make([]substringNeedle, 0, len(substrings))
	for _, raw := range substrings {
		upper := strings.ToUpper(strings.TrimSpace(raw))
		if upper == "" {
			continue
		}

		needles = append(needles, substringNeedle{raw: raw, upper: upper})
	}

	return SubstringVeto{needles: needles}
}

// Find returns the first configured substring contained in name, with original casing.
func (v SubstringVeto) Find(name string) (string, bool) {
	if len(v.needles) == 0 {
		return "", false
	}

	haystack := strings.ToUpper(name)
	for _, n := range v.needles {
		if strings.Contains(haystack, n.upper) {
			return n.raw, true
		}
	}

	return "", false
}

// PatternVeto matches compiled regular expressions against bare filenames.
type PatternVeto struct {
	patterns []*regexp.Regexp
}

// NewPatternVeto compiles regex sources.
// Invalid expressions are logged as warnings and dropped.
func NewPatternVeto(sources []string, logger *slog.Logger) PatternVeto {
	logger = loggerOrDiscard(logger)

	patterns := make([]*regexp.Regexp, 0, len(sources))
	for _, src := range sources {
		re, err := regexp.Compile(src)
		if err != nil {
			logger.Warn("invalid regex pattern", slog.String("pattern", src), slog.Any("error", err))
			continue
		}

		patterns = append(patterns, re)
	}

	return PatternVeto{patterns: patterns}
}

// Find returns the source of the first expression found anywhere in name.
func (v PatternVeto) Find(name string) (string, bool) {
	for _, re := range v.patterns {
		if re.MatchString(name) {
			return re.String(), true
		}
	}

	return "", false
}
