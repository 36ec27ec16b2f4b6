package cmd

import "errors"

var (
	errConflictingValueSources = errors.New("VALUE argument and --stdin are mutually exclusive")
	errNonPositiveLength       = errors.New("--length must be greater than zero")
)
