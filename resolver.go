// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package distill

import (
	"log/slog"
	"os"
	"strconv"
)

// bytesPerMB converts max_file_size_mb into bytes.
const bytesPerMB = 1024 * 1024

// RuleSet is the compiled, immutable form of the cascade rules.
type RuleSet struct {
	whitelistFiles       Patterns
	whitelistDirectories Patterns
	blacklistFiles       Patterns
	blacklistDirectories Patterns
	blacklistExtensions  extensionSet
	patternVeto          PatternVeto
	substringVeto        SubstringVeto
	dateStampVeto        DateStampVeto
	maxFileSizeMB        float64
}

// CompileRuleSet compiles config rules. Malformed patterns are logged and never match.
func CompileRuleSet(cfg Config, logger *slog.Logger) RuleSet {
	return RuleSet{
		whitelistFiles:       CompilePatterns(cfg.Whitelist.Files, logger),
		whitelistDirectories: CompilePatterns(cfg.Whitelist.Directories, logger),
		blacklistFiles:       CompilePatterns(cfg.Blacklist.Files, logger),
		blacklistDirectories: CompilePatterns(cfg.Blacklist.Directories, logger),
		blacklistExtensions:  newExtensionSet(cfg.Blacklist.Extensions),
		patternVeto:          NewPatternVeto(cfg.Blacklist.Patterns, logger),
		substringVeto:        NewSubstringVeto(cfg.Blacklist.FilenameSubstrings),
		dateStampVeto:        NewDateStampVeto(cfg.Blacklist.DateTimeStampYYYYMMDD),
		maxFileSizeMB:        cfg.MaxFileSizeMB,
	}
}

// Resolver evaluates the priority cascade for files of one repository.
type Resolver struct {
	logger   *slog.Logger
	rules    RuleSet
	sampling SamplingPolicy
}

// NewResolver compiles cfg into a resolver.
func NewResolver(cfg Config, logger *slog.Logger) *Resolver {
	logger = loggerOrDiscard(logger)

	return &Resolver{
		logger:   logger,
		rules:    CompileRuleSet(cfg, logger),
		sampling: cfg.SamplingPolicy(),
	}
}

// Decide resolves the action for the file at path inside repository root.
//
// Paths resolving outside root (for example through a symlink) are skipped
// before any tier runs.
func (r *Resolver) Decide(path string, root string) Decision {
	rel, err := relPosix(path, root)
	if err != nil {
		return skip(ReasonOutsideRoot)
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return r.DecideRel(rel, -1)
	}

	return r.DecideRel(rel, info.Size())
}

// DecideRel resolves the action for a slash-separated path relative to the
// repository root. A negative size marks a non-regular or missing file: it is
// never sampled and never size-checked.
//
// Cascade order:
// 1. Tier 1, whitelist.files: COPY or SAMPLE, returns before any veto.
// 2. Tier 2, explicit vetoes: blacklist.files, date stamp, substring, regex.
// 3. Tier 3, scope gate: whitelist.directories.
// 4. Tier 4, sanity: blacklist.directories, blacklist.extensions, size limit.
func (r *Resolver) DecideRel(rel string, size int64) Decision {
	name := pathBase(rel)
	ext := pathExt(rel)
	sample := size >= 0 && r.sampling.Targets(ext)

	if r.rules.whitelistFiles.MatchFile(rel) {
		if sample {
			return Decision{Action: ActionSample, Reason: ReasonWhitelistFileSampled}
		}

		return Decision{Action: ActionCopy, Reason: ReasonWhitelistFile}
	}

	if d, vetoed := r.veto(rel, name); vetoed {
		return d
	}

	if !r.rules.whitelistDirectories.MatchDir(rel) {
		return skip(ReasonNotInScope)
	}

	if r.rules.blacklistDirectories.MatchDir(rel) {
		return skip(ReasonBlacklistDirectory)
	}

	if r.rules.blacklistExtensions.has(ext) {
		return skipWith(ReasonBlacklistExtension, ext)
	}

	if size >= 0 && float64(size)/bytesPerMB > r.rules.maxFileSizeMB {
		return skip(ReasonFileSize + ">" + formatSizeLimit(r.rules.maxFileSizeMB) + "MB")
	}

	if sample {
		return Decision{Action: ActionSample, Reason: ReasonSampled}
	}

	return Decision{Action: ActionCopy, Reason: ReasonCopied}
}

// veto evaluates Tier 2 sub-rules in fixed order.
func (r *Resolver) veto(rel string, name string) (Decision, bool) {
	if r.rules.blacklistFiles.MatchFile(rel) {
		return skip(ReasonBlacklistFile), true
	}

	if stamp, ok := r.rules.dateStampVeto.Find(name); ok {
		return skipWith(ReasonBlacklistDateStamp, stamp), true
	}

	if sub, ok := r.rules.substringVeto.Find(name); ok {
		return skipWith(ReasonBlacklistSubstring, sub), true
	}

	if pattern, ok := r.rules.patternVeto.Find(name); ok {
		return skipWith(ReasonBlacklistPattern, pattern), true
	}

	return Decision{}, false
}

// Sampling returns the resolver sampling policy.
func (r *Resolver) Sampling() SamplingPolicy {
	return r.sampling
}

// formatSizeLimit renders a float limit the way YAML users wrote it, keeping
// at least one fractional digit ("5" -> "5.0", "1.5" -> "1.5").
func formatSizeLimit(limit float64) string {
	s := strconv.FormatFloat(limit, 'f', -1, 64)
	for i := 0; i < len(s); i++ {
		if s[i] == '.' || s[i] == 'e' || s[i] == 'I' || s[i] == 'N' {
			return s
		}
	}

	return s + ".0"
}
