// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package distill

import "testing"

func TestNormalizeExtension(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"csv":     ".csv",
		".CSV":    ".csv",
		"*.Json":  ".json",
		"  .tsv ": ".tsv",
		"..jsonl": ".jsonl",
		"":        "",
		"*":       "",
		".":       "",
	}

	for in, want := range cases {
		if got := normalizeExtension(in); got != want {
			t.Fatalf("normalizeExtension(%q)=%q, want %q", in, got, want)
		}
	}
}

func TestExtensionSet(t *testing.T) {
	t.Parallel()

	set := newExtensionSet([]string{"CSV", "*.json", "", " "})
	if len(set) != 2 {
		t.Fatalf("len(set)=%d, want 2", len(set))
	}

	if !set.has(".csv") || !set.has(".json") {
		t.Fatalf("expected .csv and .json in set: %v", set)
	}

	if set.has("") || set.has(".tsv") {
		t.Fatalf("unexpected membership in set: %v", set)
	}
}

func TestPathExt(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"data/Report.CSV": ".csv",
		"a/b.tar.gz":      ".gz",
		".gitignore":      "",
		"dir.d/Makefile":  "",
		"trailing.":       "",
		"nested/.env":     "",
		"nested/x.jsonl":  ".jsonl",
	}

	for in, want := range cases {
		if got := pathExt(in); got != want {
			t.Fatalf("pathExt(%q)=%q, want %q", in, got, want)
		}
	}
}
