// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package distill

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsSortedSkipReasons(t *testing.T) {
	t.Parallel()

	s := NewStats()
	for range 3 {
		s.AddSkip(ReasonNotInScope)
	}

	s.AddSkip(ReasonBlacklistFile)
	s.AddSkip(ReasonBlacklistDirectory)
	s.AddSkip("")

	assert.Equal(t, 6, s.Skipped)
	assert.Equal(t, []ReasonCount{
		{Reason: ReasonNotInScope, Count: 3},
		{Reason: "skip", Count: 1},
		{Reason: ReasonBlacklistFile, Count: 1},
		{Reason: ReasonBlacklistDirectory, Count: 1},
	}, s.SortedSkipReasons())
}

func TestStatsSuccess(t *testing.T) {
	t.Parallel()

	s := NewStats()
	s.AddSkip(ReasonNotInScope)
	assert.True(t, s.Success())

	s.Errors++
	assert.False(t, s.Success())
}

func TestWriteSummary(t *testing.T) {
	t.Parallel()

	s := NewStats()
	s.Scanned = 10
	s.Copied = 4
	s.Sampled = 1
	s.BytesWritten = 2048
	s.AddSkip(ReasonBlacklistFile)
	for range 4 {
		s.AddSkip(ReasonNotInScope)
	}

	var out bytes.Buffer
	require.NoError(t, WriteSummary(&out, s, false))

	text := out.String()
	assert.Contains(t, text, "Total files scanned:  10\n")
	assert.Contains(t, text, "Files copied:         4\n")
	assert.Contains(t, text, "Files skipped:        5\n")
	assert.Contains(t, text, "Bytes written:        2.0 KiB\n")
	assert.Contains(t, text, "Distillation completed successfully")
	assert.NotContains(t, text, "\x1b[")

	scope := strings.Index(text, ReasonNotInScope)
	file := strings.Index(text, ReasonBlacklistFile)
	require.True(t, scope > 0 && file > 0)
	assert.Less(t, scope, file)
}

func TestWriteSummaryFailure(t *testing.T) {
	t.Parallel()

	s := NewStats()
	s.Errors = 2

	var out bytes.Buffer
	require.NoError(t, WriteSummary(&out, s, false))
	assert.Contains(t, out.String(), "Distillation completed with 2 error(s)")
	assert.NotContains(t, out.String(), "Skip reasons breakdown")
}
