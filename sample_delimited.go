// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package distill

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// sampleDelimited stream-samples CSV/TSV input as
// [header] + head rows + separator row + tail rows.
func (s *Sampler) sampleDelimited(src string, dst string, delimiter rune) (SampleResult, error) {
	text, closeSrc, err := openText(src)
	if err != nil {
		return SampleResult{}, err
	}
	defer func() { _ = closeSrc() }()

	reader := csv.NewReader(text)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		header  []string
		head    = make([][]string, 0, s.policy.HeadRows)
		tail    = newTailWindow[[]string](s.policy.TailRows)
		total   int
		numCols = 1
		first   = true
	)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return SampleResult{}, fmt.Errorf("read delimited row: %w", err)
		}

		numCols = max(numCols, len(row))

		if first && s.policy.IncludeHeader {
			header = row
			first = false
			continue
		}

		first = false
		total++
		if len(head) < s.policy.HeadRows {
			head = append(head, row)
		}

		tail.push(row)
	}

	if header == nil && total == 0 {
		s.logger.Warn("empty delimited file", slog.String("path", src))
		return s.copyIntact(src, dst, 0)
	}

	if s.fitsUnsampled(total) {
		s.logger.Info("SAMPLED[DELIM - copied intact]", slog.String("file", pathBase(src)), slog.Int("rows", total))
		return s.copyIntact(src, dst, total)
	}

	tailRows := tail.items()
	omitted := total - len(head) - len(tailRows)

	perm := sourcePerm(src)
	written, err := writeFileAtomic(dst, perm, func(w io.Writer) error {
		var b strings.Builder
		if header != nil {
			appendDelimitedRow(&b, header, delimiter)
		}

		for _, row := range head {
			appendDelimitedRow(&b, row, delimiter)
		}

		sep := make([]string, numCols)
		sep[0] = fmt.Sprintf("... (%d rows omitted) ...", omitted)
		appendDelimitedRow(&b, sep, delimiter)

		for _, row := range tailRows {
			appendDelimitedRow(&b, row, delimiter)
		}

		_, err := io.WriteString(w, b.String())
		return err
	})
	if err != nil {
		return SampleResult{}, err
	}

	s.logger.Info("SAMPLED[DELIM]", slog.String("file", pathBase(src)), slog.Int("rows", total))

	return SampleResult{
		Mode:         SampleModeReduced,
		Total:        total,
		Omitted:      omitted,
		BytesWritten: written,
	}, nil
}

// appendDelimitedRow writes one LF-terminated row with minimal quoting: only
// fields holding the delimiter, a quote or a line break are quoted, and a row
// made of one empty field is written as "" so it is not read back as blank.
func appendDelimitedRow(b *strings.Builder, row []string, delimiter rune) {
	if len(row) == 1 && row[0] == "" {
		b.WriteString("\"\"\n")
		return
	}

	for i, field := range row {
		if i > 0 {
			b.WriteRune(delimiter)
		}

		if !strings.ContainsRune(field, delimiter) && !strings.ContainsAny(field, "\"\r\n") {
			b.WriteString(field)
			continue
		}

		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}

	b.WriteByte('\n')
}

// sourcePerm returns src permission bits, falling back to 0o644.
func sourcePerm(src string) os.FileMode {
	info, err := os.Stat(src)
	if err != nil {
		return 0o644
	}

	return info.Mode().Perm()
}
