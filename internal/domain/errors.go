package domain

import "errors"

// Configuration errors returned by ConfigValidator.Validate. Callers match
// them with errors.Is.
var (
	// ErrNoTarget is returned when no positional argument was given. An
	// empty argument is still a target.
	ErrNoTarget = errors.New("no target specified: provide a page cycler URL")

	// ErrInvalidFormat is returned for an output format other than raw, json or tui.
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrConflictingFormats is returned when more than one of --raw, --json
	// and --tui is given.
	ErrConflictingFormats = errors.New("conflicting output formats: use only one of --raw, --json, --tui")

	// ErrEmptyResultsDir is returned when the results directory is explicitly empty.
	ErrEmptyResultsDir = errors.New("results directory must not be empty")

	// ErrEmptyBridgePath is returned when the bridge binary is explicitly empty.
	ErrEmptyBridgePath = errors.New("bridge binary path must not be empty")
)
