// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package distill

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// summaryRule is the horizontal rule framing the summary.
var summaryRule = strings.Repeat("=", 70)

// WriteSummary prints run totals and the skip-reason histogram to w.
// Colors are applied only when colored is set.
func WriteSummary(w io.Writer, stats *Stats, colored bool) error {
	title := color.New(color.Bold)
	ok := color.New(color.FgGreen, color.Bold)
	bad := color.New(color.FgRed, color.Bold)
	for _, c := range []*color.Color{title, ok, bad} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	var b strings.Builder
	fmt.Fprintln(&b, summaryRule)
	fmt.Fprintln(&b, title.Sprint("DISTILLATION SUMMARY"))
	fmt.Fprintln(&b, summaryRule)
	fmt.Fprintf(&b, "Total files scanned:  %d\n", stats.Scanned)
	fmt.Fprintf(&b, "Files copied:         %d\n", stats.Copied)
	fmt.Fprintf(&b, "Files sampled:        %d\n", stats.Sampled)
	fmt.Fprintf(&b, "Files skipped:        %d\n", stats.Skipped)
	fmt.Fprintf(&b, "Errors:               %d\n", stats.Errors)
	fmt.Fprintf(&b, "Bytes written:        %s\n", humanize.IBytes(uint64(max(0, stats.BytesWritten))))

	if reasons := stats.SortedSkipReasons(); len(reasons) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "Skip reasons breakdown:")
		for _, rc := range reasons {
			fmt.Fprintf(&b, "  %-34s: %6d\n", rc.Reason, rc.Count)
		}
	}

	fmt.Fprintln(&b, summaryRule)
	if stats.Success() {
		fmt.Fprintln(&b, ok.Sprint("Distillation completed successfully"))
	} else {
		fmt.Fprintln(&b, bad.Sprintf("Distillation completed with %d error(s)", stats.Errors))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
