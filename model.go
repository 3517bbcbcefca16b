// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package distill

import "fmt"

// Action represents what happens to one file.
type Action uint8

const (
	// ActionSkip means the file is left out of the destination.
	ActionSkip Action = iota
	// ActionCopy means the file is copied verbatim.
	ActionCopy
	// ActionSample means the file is reduced to head and tail excerpts.
	ActionSample
)

// String returns upper-case action name.
func (a Action) String() string {
	switch a {
	case ActionSkip:
		return "SKIP"
	case ActionCopy:
		return "COPY"
	case ActionSample:
		return "SAMPLE"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// Stable decision reasons. Parameterized reasons append ":<value>" or the size limit.
const (
	ReasonOutsideRoot          = "outside_repository_root"
	ReasonWhitelistFile        = "tier1_whitelist_file"
	ReasonWhitelistFileSampled = "tier1_whitelist_file_sampled"
	ReasonBlacklistFile        = "tier2_blacklist_file"
	ReasonBlacklistDateStamp   = "tier2_blacklist_datetime_stamp"
	ReasonBlacklistSubstring   = "tier2_blacklist_filename_substring"
	ReasonBlacklistPattern     = "tier2_blacklist_pattern"
	ReasonNotInScope           = "tier3_not_in_whitelist_scope"
	ReasonBlacklistDirectory   = "tier4_blacklist_directory"
	ReasonBlacklistExtension   = "tier4_blacklist_ext"
	ReasonFileSize             = "tier4_file_size"
	ReasonSampled              = "tier4_sampled"
	ReasonCopied               = "tier4_copied"
)

// Decision is the resolved action with its machine-readable reason.
type Decision struct {
	// Reason is a stable tag usable as a histogram key.
	Reason string `json:"reason" yaml:"reason"`
	// Action is the resolved action.
	Action Action `json:"action" yaml:"action"`
}

// String formats decision as "ACTION[reason]".
func (d Decision) String() string {
	return d.Action.String() + "[" + d.Reason + "]"
}

// skip builds a skip decision.
func skip(reason string) Decision {
	return Decision{Action: ActionSkip, Reason: reason}
}

// skipWith builds a parameterized "reason:value" skip decision.
func skipWith(reason string, value string) Decision {
	return Decision{Action: ActionSkip, Reason: reason + ":" + value}
}
