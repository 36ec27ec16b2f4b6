package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindProjectRoot traverses up from start looking for a directory that
// contains marker. Returns the directory if found, empty string otherwise.
// Stops searching one level above the user's home directory.
func FindProjectRoot(start, marker string) (string, error) {
	currentDir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}

	// A missing home directory just means the walk runs to the filesystem root.
	homeDir, _ := os.UserHomeDir()
	stopDir := ""
	if homeDir != "" {
		stopDir = filepath.Dir(homeDir)
	}

	for {
		if stopDir != "" && currentDir == stopDir {
			return "", nil
		}

		fileInfo, err := os.Stat(filepath.Join(currentDir, marker))
		if err == nil {
			if !fileInfo.IsDir() {
				return currentDir, nil
			}
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("error checking for %s at %s: %w", marker, currentDir, err)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}
