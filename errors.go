// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/distill

package distill

import "errors"

// Sentinel errors for distill operations.
var (
	// ErrConfig indicates a missing or unparseable configuration file.
	ErrConfig = errors.New("invalid configuration")
	// ErrInvalidPattern indicates a malformed glob pattern.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrSourceRoot indicates an unreadable or non-directory source root.
	ErrSourceRoot = errors.New("invalid source root")
	// ErrDestinationRoot indicates the destination root could not be prepared.
	ErrDestinationRoot = errors.New("invalid destination root")
	// ErrOverwriteDeclined indicates the existing destination was not confirmed for removal.
	ErrOverwriteDeclined = errors.New("destination overwrite declined")
	// ErrOutsideRoot indicates a path resolved outside the repository root.
	ErrOutsideRoot = errors.New("path is outside repository root")
)
