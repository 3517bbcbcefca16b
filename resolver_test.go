// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package distill

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cascadeConfig returns a config exercising every tier.
func cascadeConfig() Config {
	return Config{
		MaxFileSizeMB: 1.0,
		Whitelist: WhitelistConfig{
			Files:       []string{"data/big.csv", "vendor/keep.bin", "backup_notes.md", "README.md"},
			Directories: []string{"src/", "data/", "packages/*/lib"},
		},
		Blacklist: BlacklistConfig{
			Files:                 []string{"src/.env", "README.md", "**/*.pem"},
			Directories:           []string{"src/generated/"},
			Extensions:            []string{"bin", ".png"},
			Patterns:              []string{`\.min\.js$`},
			FilenameSubstrings:    []string{"BACKUP"},
			DateTimeStampYYYYMMDD: true,
		},
		DataSampling: SamplingConfig{
			Enabled:          true,
			TargetExtensions: []string{".csv", "jsonl"},
			IncludeHeader:    true,
			HeadRows:         5,
			TailRows:         5,
		},
	}
}

func TestDecideRelCascade(t *testing.T) {
	t.Parallel()

	r := NewResolver(cascadeConfig(), nil)
	const mb = int64(bytesPerMB)

	cases := []struct {
		rel    string
		size   int64
		action Action
		reason string
	}{
		{"data/big.csv", 50 * mb, ActionSample, ReasonWhitelistFileSampled},
		{"vendor/keep.bin", 10, ActionCopy, ReasonWhitelistFile},
		{"backup_notes.md", 10, ActionCopy, ReasonWhitelistFile},
		{"README.md", 10, ActionCopy, ReasonWhitelistFile},
		{"src/.env", 10, ActionSkip, ReasonBlacklistFile},
		{"src/keys/server.pem", 10, ActionSkip, ReasonBlacklistFile},
		{"src/report_20251207.py", 10, ActionSkip, ReasonBlacklistDateStamp + ":20251207"},
		{"src/db_bAcKuP.sql", 10, ActionSkip, ReasonBlacklistSubstring + ":BACKUP"},
		{"src/app.min.js", 10, ActionSkip, ReasonBlacklistPattern + `:\.min\.js$`},
		{"docs/index.md", 10, ActionSkip, ReasonNotInScope},
		{"src/generated/api.go", 10, ActionSkip, ReasonBlacklistDirectory},
		{"src/logo.PNG", 10, ActionSkip, ReasonBlacklistExtension + ":.png"},
		{"src/huge.py", 2 * mb, ActionSkip, "tier4_file_size>1.0MB"},
		{"src/exact.py", mb, ActionCopy, ReasonCopied},
		{"data/events.jsonl", 10, ActionSample, ReasonSampled},
		{"data/events.json", 10, ActionCopy, ReasonCopied},
		{"packages/api/lib/util.go", 10, ActionCopy, ReasonCopied},
		{"packages/api/cmd/main.go", 10, ActionSkip, ReasonNotInScope},
		{"data/pipe.csv", -1, ActionCopy, ReasonCopied},
	}

	for _, tc := range cases {
		got := r.DecideRel(tc.rel, tc.size)
		assert.Equalf(t, tc.action, got.Action, "action for %s", tc.rel)
		assert.Equalf(t, tc.reason, got.Reason, "reason for %s", tc.rel)
	}
}

func TestDecideRelSamplingDisabled(t *testing.T) {
	t.Parallel()

	cfg := cascadeConfig()
	cfg.DataSampling.Enabled = false
	r := NewResolver(cfg, nil)

	assert.Equal(t, Decision{Action: ActionCopy, Reason: ReasonWhitelistFile}, r.DecideRel("data/big.csv", 10))
	assert.Equal(t, Decision{Action: ActionCopy, Reason: ReasonCopied}, r.DecideRel("data/small.csv", 10))
}

func TestDecideRelEmptyScopeLocksOut(t *testing.T) {
	t.Parallel()

	r := NewResolver(Config{MaxFileSizeMB: 5}, nil)

	for _, rel := range []string{"main.go", "src/a.py", "README.md"} {
		d := r.DecideRel(rel, 1)
		assert.Equal(t, ActionSkip, d.Action)
		assert.Equal(t, ReasonNotInScope, d.Reason)
	}
}

func TestDecideRelNestedDirectoryGlobs(t *testing.T) {
	t.Parallel()

	r := NewResolver(Config{
		MaxFileSizeMB: 5,
		Whitelist:     WhitelistConfig{Directories: []string{"src", "*/docs"}},
		Blacklist:     BlacklistConfig{Directories: []string{"*.egg-info"}},
	}, nil)

	assert.Equal(t, ReasonBlacklistDirectory, r.DecideRel("src/pkg.egg-info", 10).Reason)
	assert.Equal(t, ReasonBlacklistDirectory, r.DecideRel("src/pkg.egg-info/PKG-INFO", 10).Reason)
	assert.Equal(t, ReasonCopied, r.DecideRel("services/api/docs/guide/intro.md", 10).Reason)
	assert.Equal(t, ReasonNotInScope, r.DecideRel("services/api/notes/intro.md", 10).Reason)
}

func TestDecideRelDisabledDateStamp(t *testing.T) {
	t.Parallel()

	cfg := cascadeConfig()
	cfg.Blacklist.DateTimeStampYYYYMMDD = false
	r := NewResolver(cfg, nil)

	assert.Equal(t, ReasonCopied, r.DecideRel("src/report_20251207.py", 10).Reason)
}

func TestDecideOnDisk(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "main.go"), []byte("package main\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "big.py"), make([]byte, 2*bytesPerMB), 0o644))

	r := NewResolver(cascadeConfig(), nil)

	assert.Equal(t, Decision{Action: ActionCopy, Reason: ReasonCopied}, r.Decide(filepath.Join(root, "src", "main.go"), root))
	assert.Equal(t, "tier4_file_size>1.0MB", r.Decide(filepath.Join(root, "src", "big.py"), root).Reason)
	assert.Equal(t, skip(ReasonOutsideRoot), r.Decide(filepath.Join(t.TempDir(), "x.go"), root))
}

func TestDecideSymlinkOutsideRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	outside := t.TempDir()
	target := filepath.Join(outside, "secret.go")
	require.NoError(t, os.WriteFile(target, []byte("package secret\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))

	link := filepath.Join(root, "src", "link.go")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlink not supported: %v", err)
	}

	r := NewResolver(cascadeConfig(), nil)
	assert.Equal(t, skip(ReasonOutsideRoot), r.Decide(link, root))
}

func TestFormatSizeLimit(t *testing.T) {
	t.Parallel()

	cases := map[float64]string{
		5:    "5.0",
		1.5:  "1.5",
		0:    "0.0",
		0.25: "0.25",
	}

	for in, want := range cases {
		if got := formatSizeLimit(in); got != want {
			t.Fatalf("formatSizeLimit(%v)=%q, want %q", in, got, want)
		}
	}
}

func TestDecisionString(t *testing.T) {
	t.Parallel()

	d := Decision{Action: ActionSample, Reason: ReasonSampled}
	if got := d.String(); got != "SAMPLE[tier4_sampled]" {
		t.Fatalf("String()=%q", got)
	}

	if got := Action(9).String(); got != "Action(9)" {
		t.Fatalf("Action(9).String()=%q", got)
	}
}
