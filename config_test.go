// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package distill

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfigFile writes YAML content to a temporary config file.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(writeConfigFile(t, "whitelist:\n  directories: [src/]\n"))
	require.NoError(t, err)

	assert.InDelta(t, 5.0, cfg.MaxFileSizeMB, 0)
	assert.Equal(t, "chat", cfg.AICodingEnv)
	assert.Equal(t, []string{"src/"}, cfg.Whitelist.Directories)
	assert.Empty(t, cfg.Whitelist.Files)
	assert.Empty(t, cfg.Blacklist.Extensions)
	assert.True(t, cfg.Blacklist.DateTimeStampYYYYMMDD)
	assert.True(t, cfg.DataSampling.Enabled)
	assert.True(t, cfg.DataSampling.IncludeHeader)
	assert.Equal(t, 5, cfg.DataSampling.HeadRows)
	assert.Equal(t, 5, cfg.DataSampling.TailRows)
}

func TestLoadConfigValues(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
max_file_size_mb: 1.5
ai_coding_env: agent
whitelist:
  files: [README.md]
  directories: [src/, docs/]
blacklist:
  extensions: [PNG, .exe]
  patterns: ['\.min\.js$']
  filename_substrings: [BACKUP]
  datetime_stamp_yyyymmdd: false
data_sampling:
  enabled: false
  target_extensions: [csv]
  head_rows: 2
  tail_rows: -3
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.InDelta(t, 1.5, cfg.MaxFileSizeMB, 0)
	assert.Equal(t, "agent", cfg.AICodingEnv)
	assert.Equal(t, []string{"README.md"}, cfg.Whitelist.Files)
	assert.Equal(t, []string{`\.min\.js$`}, cfg.Blacklist.Patterns)
	assert.False(t, cfg.Blacklist.DateTimeStampYYYYMMDD)
	assert.False(t, cfg.DataSampling.Enabled)

	policy := cfg.SamplingPolicy()
	assert.Equal(t, 2, policy.HeadRows)
	assert.Equal(t, 0, policy.TailRows)
	assert.False(t, policy.Targets(".csv"))

	cfg.DataSampling.Enabled = true
	assert.True(t, cfg.SamplingPolicy().Targets(".csv"))
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("DISTILL_MAX_FILE_SIZE_MB", "0.5")
	t.Setenv("DISTILL_DATA_SAMPLING_HEAD_ROWS", "7")

	cfg, err := LoadConfig(writeConfigFile(t, "max_file_size_mb: 3\n"))
	require.NoError(t, err)

	assert.InDelta(t, 0.5, cfg.MaxFileSizeMB, 0)
	assert.Equal(t, 7, cfg.DataSampling.HeadRows)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, ErrConfig)

	_, err = LoadConfig(writeConfigFile(t, "whitelist: [unclosed\n"))
	require.ErrorIs(t, err, ErrConfig)
}

func TestWriteConfigRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteConfig(&buf, StarterConfig()))

	cfg, err := LoadConfig(writeConfigFile(t, buf.String()))
	require.NoError(t, err)
	assert.Equal(t, StarterConfig(), cfg)
}
