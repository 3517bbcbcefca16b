// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package distill

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// sampledArray is the wrapper written in place of a long top-level JSON array.
// Field order is the output key order.
type sampledArray struct {
	Sampled      bool              `json:"_sampled"`
	TotalItems   int               `json:"_total_items"`
	OmittedItems int               `json:"_omitted_items"`
	Head         []json.RawMessage `json:"head"`
	Tail         []json.RawMessage `json:"tail"`
}

// sampleJSONLines stream-samples one-value-per-line input. Blank lines are not counted.
func (s *Sampler) sampleJSONLines(src string, dst string) (SampleResult, error) {
	text, closeSrc, err := openText(src)
	if err != nil {
		return SampleResult{}, err
	}
	defer func() { _ = closeSrc() }()

	var (
		head  = make([]string, 0, s.policy.HeadRows)
		tail  = newTailWindow[string](s.policy.TailRows)
		total int
	)

	reader := bufio.NewReader(text)
	for {
		raw, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return SampleResult{}, fmt.Errorf("read line: %w", err)
		}

		line := strings.TrimRight(raw, "\r\n")
		if strings.TrimSpace(line) != "" {
			total++
			if len(head) < s.policy.HeadRows {
				head = append(head, line)
			}

			tail.push(line)
		}

		if err != nil {
			break
		}
	}

	if total == 0 {
		s.logger.Warn("empty JSONL file", slog.String("path", src))
		return s.copyIntact(src, dst, 0)
	}

	if s.fitsUnsampled(total) {
		s.logger.Info("SAMPLED[JSONL - copied intact]", slog.String("file", pathBase(src)), slog.Int("objects", total))
		return s.copyIntact(src, dst, total)
	}

	tailLines := tail.items()
	omitted := total - len(head) - len(tailLines)

	written, err := writeFileAtomic(dst, sourcePerm(src), func(w io.Writer) error {
		var b strings.Builder
		if len(head) > 0 {
			b.WriteString(strings.Join(head, "\n"))
			b.WriteString("\n\n")
		}

		fmt.Fprintf(&b, "... (%d objects omitted) ...\n\n", omitted)
		b.WriteString(strings.Join(tailLines, "\n"))

		_, err := io.WriteString(w, b.String())
		return err
	})
	if err != nil {
		return SampleResult{}, err
	}

	s.logger.Info("SAMPLED[JSONL]", slog.String("file", pathBase(src)), slog.Int("objects", total))

	return SampleResult{
		Mode:         SampleModeReduced,
		Total:        total,
		Omitted:      omitted,
		BytesWritten: written,
	}, nil
}

// sampleJSON samples a top-level JSON array into a head/tail wrapper object.
//
// The document is read fully because the array length must be known.
// Malformed JSON, objects and scalars are copied unmodified.
func (s *Sampler) sampleJSON(src string, dst string) (SampleResult, error) {
	text, closeSrc, err := openText(src)
	if err != nil {
		return SampleResult{}, err
	}
	defer func() { _ = closeSrc() }()

	content, err := io.ReadAll(text)
	if err != nil {
		return SampleResult{}, fmt.Errorf("read json: %w", err)
	}

	content = bytes.TrimSpace(content)
	if len(content) == 0 {
		s.logger.Debug("empty JSON document (not sampled)", slog.String("file", pathBase(src)))
		return s.copyIntact(src, dst, 0)
	}

	if !json.Valid(content) {
		s.logger.Warn("invalid JSON, copying as-is", slog.String("file", pathBase(src)))
		return s.copyIntact(src, dst, 0)
	}

	if content[0] != '[' {
		s.logger.Debug("JSON object/primitive (not sampled)", slog.String("file", pathBase(src)))
		return s.copyIntact(src, dst, 0)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(content, &items); err != nil {
		return SampleResult{}, fmt.Errorf("decode json array: %w", err)
	}

	total := len(items)
	if s.fitsUnsampled(total) {
		s.logger.Info("SAMPLED[JSON - copied intact]", slog.String("file", pathBase(src)), slog.Int("items", total))
		return s.copyIntact(src, dst, total)
	}

	wrapper := sampledArray{
		Sampled:    true,
		TotalItems: total,
		Head:       items[:s.policy.HeadRows],
		Tail:       items[total-s.policy.TailRows:],
	}
	wrapper.OmittedItems = total - len(wrapper.Head) - len(wrapper.Tail)

	body, err := encodeIndented(wrapper)
	if err != nil {
		return SampleResult{}, err
	}

	written, err := writeFileAtomic(dst, sourcePerm(src), func(w io.Writer) error {
		_, err := w.Write(body)
		return err
	})
	if err != nil {
		return SampleResult{}, err
	}

	s.logger.Info("SAMPLED[JSON]", slog.String("file", pathBase(src)), slog.Int("items", total))

	return SampleResult{
		Mode:         SampleModeReduced,
		Total:        total,
		Omitted:      wrapper.OmittedItems,
		BytesWritten: written,
	}, nil
}

// encodeIndented encodes v with two-space indentation, leaving HTML characters
// and non-ASCII text unescaped and without a trailing newline.
func encodeIndented(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode sampled json: %w", err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
