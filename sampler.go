// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package distill

import (
	"fmt"
	"log/slog"
)

// sampleFormat is the sampling strategy selected by file extension.
type sampleFormat uint8

const (
	// formatUnknown has no sampling strategy and is copied intact.
	formatUnknown sampleFormat = iota
	// formatCSV is comma-separated text.
	formatCSV
	// formatTSV is tab-separated text.
	formatTSV
	// formatJSON is a single JSON document.
	formatJSON
	// formatJSONLines is one JSON value per line.
	formatJSONLines
)

// formatOf maps a lower-cased extension to its sampling format.
func formatOf(ext string) sampleFormat {
	switch ext {
	case ".csv":
		return formatCSV
	case ".tsv":
		return formatTSV
	case ".json":
		return formatJSON
	case ".jsonl":
		return formatJSONLines
	default:
		return formatUnknown
	}
}

// String returns short format name used in logs.
func (f sampleFormat) String() string {
	switch f {
	case formatCSV, formatTSV:
		return "DELIM"
	case formatJSON:
		return "JSON"
	case formatJSONLines:
		return "JSONL"
	default:
		return "UNKNOWN"
	}
}

// SampleMode reports what the sampler wrote.
type SampleMode uint8

const (
	// SampleModeIntact means the source was copied unmodified.
	SampleModeIntact SampleMode = iota
	// SampleModeReduced means a head/tail excerpt was written.
	SampleModeReduced
)

// SampleResult describes one sampled file.
type SampleResult struct {
	// Format is the short format name ("DELIM", "JSON", "JSONL", "UNKNOWN").
	Format string
	// Total is the number of data rows, objects or array items seen.
	Total int
	// Omitted is the number of rows or items left out, zero for intact copies.
	Omitted int
	// BytesWritten is the destination file size.
	BytesWritten int64
	// Mode reports whether the output was reduced.
	Mode SampleMode
}

// Sampler reduces large structured data files to bounded head/tail excerpts.
type Sampler struct {
	logger *slog.Logger
	policy SamplingPolicy
}

// NewSampler creates a sampler for policy.
func NewSampler(policy SamplingPolicy, logger *slog.Logger) *Sampler {
	return &Sampler{
		logger: loggerOrDiscard(logger),
		policy: policy,
	}
}

// Sample writes a sampled or intact copy of src to dst, dispatching by extension.
//
// Inputs too small to shrink, empty inputs, malformed JSON and non-array JSON are
// copied unmodified. Returned errors are per-file failures (I/O, decoding) and
// leave dst absent.
func (s *Sampler) Sample(src string, dst string) (SampleResult, error) {
	format := formatOf(pathExt(src))

	var (
		res SampleResult
		err error
	)

	switch format {
	case formatCSV:
		res, err = s.sampleDelimited(src, dst, ',')
	case formatTSV:
		res, err = s.sampleDelimited(src, dst, '\t')
	case formatJSONLines:
		res, err = s.sampleJSONLines(src, dst)
	case formatJSON:
		res, err = s.sampleJSON(src, dst)
	default:
		s.logger.Warn("unknown sampling type, copying as-is",
			slog.String("path", src),
			slog.String("ext", pathExt(src)))
		res, err = s.copyIntact(src, dst, 0)
	}

	res.Format = format.String()
	if err != nil {
		return res, fmt.Errorf("sample %s: %w", src, err)
	}

	return res, nil
}

// copyIntact copies src unmodified and reports total items seen.
func (s *Sampler) copyIntact(src string, dst string, total int) (SampleResult, error) {
	written, err := copyFile(src, dst)
	if err != nil {
		return SampleResult{}, err
	}

	return SampleResult{
		Mode:         SampleModeIntact,
		Total:        total,
		BytesWritten: written,
	}, nil
}

// fitsUnsampled reports whether total items fit into head+tail.
func (s *Sampler) fitsUnsampled(total int) bool {
	return total <= s.policy.HeadRows+s.policy.TailRows
}
