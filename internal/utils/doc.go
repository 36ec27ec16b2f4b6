// Package utils provides shared helpers used across devforge packages.
//
// # Filesystem Utilities
//
//   - FindProjectRoot: walks up directories looking for a marker file
//   - FormatPaths: formats file paths for human-readable output
//
// # I/O Utilities
//
//   - ReadStdin: reads a piped value from standard input
//
// # Terminal Utilities
//
//   - ReadHidden: prompts for a value without echoing input
//   - IsTerminal: checks if stdin is a terminal
package utils
