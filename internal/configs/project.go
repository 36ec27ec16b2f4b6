package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/devforge/devforge/internal/utils"
)

type ProjectSettings struct {
	ProjectPath    string
	StorePath      string
	RuntimeEnvPath string
}

// ProjectSettingsFor builds the settings for a known project root.
func ProjectSettingsFor(projectPath string, config *Config) (*ProjectSettings, error) {
	abs, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project path %s: %w", projectPath, err)
	}

	return &ProjectSettings{
		ProjectPath:    abs,
		StorePath:      filepath.Join(abs, config.Secrets.StoreFile),
		RuntimeEnvPath: filepath.Join(abs, config.Secrets.RuntimeEnvFile),
	}, nil
}

// ResolveProject locates the project for a command.
//
// An explicit project path is used as-is. Otherwise the search walks up from
// the working directory to the nearest directory holding the store file, and
// falls back to the working directory itself when none is found so that the
// caller can report the store as uninitialized.
func ResolveProject(explicit string, config *Config) (*ProjectSettings, error) {
	if explicit != "" {
		return ProjectSettingsFor(explicit, config)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	root, err := utils.FindProjectRoot(wd, config.Secrets.StoreFile)
	if err != nil {
		return nil, err
	}
	if root == "" {
		root = wd
	}

	return ProjectSettingsFor(root, config)
}
