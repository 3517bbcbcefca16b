// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package distill

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the environment variable prefix for config overrides,
// e.g. DISTILL_MAX_FILE_SIZE_MB or DISTILL_DATA_SAMPLING_HEAD_ROWS.
const EnvPrefix = "DISTILL"

// Config is the user-facing distillation configuration.
type Config struct {
	// AICodingEnv is an informational label for the target assistant environment.
	AICodingEnv string `mapstructure:"ai_coding_env" yaml:"ai_coding_env"`
	// Whitelist holds include rules (Tier 1 and Tier 3).
	Whitelist WhitelistConfig `mapstructure:"whitelist" yaml:"whitelist"`
	// Blacklist holds exclusion rules (Tier 2 and Tier 4).
	Blacklist BlacklistConfig `mapstructure:"blacklist" yaml:"blacklist"`
	// DataSampling controls structured data reduction.
	DataSampling SamplingConfig `mapstructure:"data_sampling" yaml:"data_sampling"`
	// MaxFileSizeMB is the Tier 4 size limit in mebibytes.
	MaxFileSizeMB float64 `mapstructure:"max_file_size_mb" yaml:"max_file_size_mb"`
}

// WhitelistConfig lists force-included files and in-scope directories.
type WhitelistConfig struct {
	// Files are exact paths or globs relative to the repository root.
	Files []string `mapstructure:"files" yaml:"files"`
	// Directories are directory prefixes or globs defining the scope gate.
	Directories []string `mapstructure:"directories" yaml:"directories"`
}

// BlacklistConfig lists vetoes and sanity exclusions.
type BlacklistConfig struct {
	// Files are exact paths or globs vetoed in Tier 2.
	Files []string `mapstructure:"files" yaml:"files"`
	// Directories are directory prefixes or globs excluded in Tier 4.
	Directories []string `mapstructure:"directories" yaml:"directories"`
	// Extensions are excluded in Tier 4, with or without leading dot.
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`
	// Patterns are regular expressions searched in bare filenames.
	Patterns []string `mapstructure:"patterns" yaml:"patterns"`
	// FilenameSubstrings are case-insensitive filename substrings.
	FilenameSubstrings []string `mapstructure:"filename_substrings" yaml:"filename_substrings"`
	// DateTimeStampYYYYMMDD vetoes filenames containing a valid YYYYMMDD date.
	DateTimeStampYYYYMMDD bool `mapstructure:"datetime_stamp_yyyymmdd" yaml:"datetime_stamp_yyyymmdd"`
}

// SamplingConfig controls head/tail reduction of structured data files.
type SamplingConfig struct {
	// TargetExtensions are sampled extensions, with or without leading dot.
	TargetExtensions []string `mapstructure:"target_extensions" yaml:"target_extensions"`
	// HeadRows is the number of leading data rows kept.
	HeadRows int `mapstructure:"head_rows" yaml:"head_rows"`
	// TailRows is the number of trailing data rows kept.
	TailRows int `mapstructure:"tail_rows" yaml:"tail_rows"`
	// Enabled turns sampling on.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// IncludeHeader treats the first delimited row as a header.
	IncludeHeader bool `mapstructure:"include_header" yaml:"include_header"`
}

// setDefaults registers values used for missing config keys.
// List defaults are empty, so a missing whitelist section locks everything out at Tier 3.
func setDefaults(v *viper.Viper) {
	v.SetDefault("max_file_size_mb", 5.0)
	v.SetDefault("ai_coding_env", "chat")

	v.SetDefault("whitelist.files", []string{})
	v.SetDefault("whitelist.directories", []string{})

	v.SetDefault("blacklist.files", []string{})
	v.SetDefault("blacklist.directories", []string{})
	v.SetDefault("blacklist.extensions", []string{})
	v.SetDefault("blacklist.patterns", []string{})
	v.SetDefault("blacklist.filename_substrings", []string{})
	v.SetDefault("blacklist.datetime_stamp_yyyymmdd", true)

	v.SetDefault("data_sampling.enabled", true)
	v.SetDefault("data_sampling.target_extensions", []string{})
	v.SetDefault("data_sampling.include_header", true)
	v.SetDefault("data_sampling.head_rows", 5)
	v.SetDefault("data_sampling.tail_rows", 5)
}

// LoadConfig reads a YAML config file with defaults and DISTILL_* environment overrides.
//
// A missing or unparseable file returns an error wrapping ErrConfig.
func LoadConfig(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: file not found: %s", ErrConfig, path)
		}

		return Config{}, fmt.Errorf("%w: stat %s: %v", ErrConfig, path, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("%w: read %s: %v", ErrConfig, path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: decode %s: %v", ErrConfig, path, err)
	}

	return cfg, nil
}

// StarterConfig returns a populated config suitable as a starting point for new projects.
func StarterConfig() Config {
	return Config{
		MaxFileSizeMB: 5.0,
		AICodingEnv:   "chat",
		Whitelist: WhitelistConfig{
			Files:       []string{"README.md", "go.mod", "pyproject.toml", "package.json"},
			Directories: []string{"src/", "cmd/", "internal/", "pkg/", "docs/", "tests/"},
		},
		Blacklist: BlacklistConfig{
			Files:       []string{".env", "**/.env", "**/*.pem"},
			Directories: []string{".git/", "node_modules/", "vendor/", "dist/", "build/", "**/__pycache__"},
			Extensions: []string{
				".exe", ".dll", ".so", ".dylib", ".bin", ".o", ".a",
				".png", ".jpg", ".jpeg", ".gif", ".ico", ".pdf",
				".zip", ".tar", ".gz", ".7z", ".pyc", ".lock",
			},
			Patterns:              []string{`\.min\.(js|css)$`, `^~\$`, `\.(bak|swp|tmp)$`},
			FilenameSubstrings:    []string{"BACKUP", "_OLD", "ORIGINAL"},
			DateTimeStampYYYYMMDD: true,
		},
		DataSampling: SamplingConfig{
			Enabled:          true,
			TargetExtensions: []string{".csv", ".tsv", ".json", ".jsonl"},
			IncludeHeader:    true,
			HeadRows:         5,
			TailRows:         5,
		},
	}
}

// WriteConfig encodes cfg as YAML.
func WriteConfig(w io.Writer, cfg Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return enc.Close()
}

// MergeIgnoreRules appends ignore-file rules: include rules extend whitelist.files,
// exclude rules extend blacklist.files. Order inside each list is preserved.
func (c *Config) MergeIgnoreRules(rules []IgnoreRule) {
	for _, rule := range rules {
		if rule.Include {
			c.Whitelist.Files = append(c.Whitelist.Files, rule.Pattern)
			continue
		}

		c.Blacklist.Files = append(c.Blacklist.Files, rule.Pattern)
	}
}

// SamplingPolicy returns the normalized sampling policy.
func (c Config) SamplingPolicy() SamplingPolicy {
	return SamplingPolicy{
		Enabled:          c.DataSampling.Enabled,
		TargetExtensions: newExtensionSet(c.DataSampling.TargetExtensions),
		IncludeHeader:    c.DataSampling.IncludeHeader,
		HeadRows:         max(0, c.DataSampling.HeadRows),
		TailRows:         max(0, c.DataSampling.TailRows),
	}
}

// SamplingPolicy is the normalized, immutable sampling configuration.
type SamplingPolicy struct {
	// TargetExtensions are lower-case extensions with leading dot.
	TargetExtensions extensionSet
	// HeadRows is the number of leading data rows kept.
	HeadRows int
	// TailRows is the number of trailing data rows kept.
	TailRows int
	// Enabled turns sampling on.
	Enabled bool
	// IncludeHeader treats the first delimited row as a header.
	IncludeHeader bool
}

// Targets reports whether a file with extension ext is routed to sampling.
func (p SamplingPolicy) Targets(ext string) bool {
	return p.Enabled && p.TargetExtensions.has(ext)
}
