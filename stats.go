// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package distill

import (
	"cmp"
	"slices"
)

// Stats aggregates one distillation run. It is owned by the single goroutine
// driving the run and is not safe for concurrent use.
type Stats struct {
	// SkipReasons counts skipped files per decision reason.
	SkipReasons map[string]int `json:"skip_reasons" yaml:"skip_reasons"`
	// BytesWritten is the total size of files written to the destination.
	BytesWritten int64 `json:"bytes_written" yaml:"bytes_written"`
	// Scanned counts visited regular files.
	Scanned int `json:"scanned" yaml:"scanned"`
	// Copied counts files copied verbatim.
	Copied int `json:"copied" yaml:"copied"`
	// Sampled counts files routed through the sampler.
	Sampled int `json:"sampled" yaml:"sampled"`
	// Skipped counts files left out by decision.
	Skipped int `json:"skipped" yaml:"skipped"`
	// Errors counts per-file failures.
	Errors int `json:"errors" yaml:"errors"`
}

// ReasonCount is one skip-reason histogram entry.
type ReasonCount struct {
	Reason string `json:"reason" yaml:"reason"`
	Count  int    `json:"count" yaml:"count"`
}

// NewStats creates empty run statistics.
func NewStats() *Stats {
	return &Stats{SkipReasons: make(map[string]int)}
}

// AddSkip records one skipped file under reason.
func (s *Stats) AddSkip(reason string) {
	if reason == "" {
		reason = "skip"
	}

	s.Skipped++
	s.SkipReasons[reason]++
}

// SortedSkipReasons returns the histogram by descending count, ties by reason.
func (s *Stats) SortedSkipReasons() []ReasonCount {
	out := make([]ReasonCount, 0, len(s.SkipReasons))
	for reason, count := range s.SkipReasons {
		out = append(out, ReasonCount{Reason: reason, Count: count})
	}

	slices.SortFunc(out, func(a, b ReasonCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}

		return cmp.Compare(a.Reason, b.Reason)
	})

	return out
}

// Success reports whether the run finished without per-file errors.
// Skips never affect success.
func (s *Stats) Success() bool {
	return s.Errors == 0
}
