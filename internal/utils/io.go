package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadStdin reads a single value from piped stdin. One trailing line ending
// is removed so that `echo value | devforge secrets set NAME --stdin` works.
// Returns an error if stdin is a terminal or empty.
func ReadStdin() (string, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat stdin: %w", err)
	}

	// ModeCharDevice means nothing was piped in.
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return "", fmt.Errorf("no data provided on stdin (hint: pipe the secret value to this command)")
	}

	return readValue(os.Stdin)
}

func readValue(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read from stdin: %w", err)
	}

	value := strings.TrimSuffix(string(data), "\n")
	value = strings.TrimSuffix(value, "\r")
	if value == "" {
		return "", fmt.Errorf("stdin is empty")
	}

	return value, nil
}
