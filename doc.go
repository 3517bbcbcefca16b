// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

/*
Package distill builds reduced copies of repository trees for bounded-size snapshots.

Every file is resolved through a tiered priority cascade into one of three actions:
copy verbatim, sample (large CSV/TSV/JSON/JSONL reduced to head and tail excerpts)
or skip. Skips carry a stable reason tag usable as a histogram key.

Cascade order:
  - Tier 1: `whitelist.files` force-includes a file and returns immediately
  - Tier 2: explicit vetoes (`blacklist.files`, date stamps, filename substrings, regex patterns)
  - Tier 3: scope gate, a file must live under `whitelist.directories`
  - Tier 4: sanity checks (`blacklist.directories`, `blacklist.extensions`, `max_file_size_mb`)

Basic flow:
  - load configuration (`LoadConfig`) or start from `StarterConfig`
  - optionally merge ignore files (`LoadIgnoreFiles` / `Config.MergeIgnoreRules`)
  - compile resolver (`NewResolver`) and sampler (`NewSampler`)
  - run (`Distiller.Run`) and report (`WriteSummary`)

Malformed glob and regex patterns never fail compilation: they are logged
as warnings and never match.
*/
package distill
