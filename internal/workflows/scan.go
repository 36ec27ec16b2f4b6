package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/devforge/devforge/internal/configs"
	kerrors "github.com/devforge/devforge/internal/errors"
	logger "github.com/devforge/devforge/internal/logging"
	"github.com/devforge/devforge/internal/scanner"
)

// ScanOptions configures the scan workflow.
type ScanOptions struct {
	// Dir is the directory to scan. If empty, the working directory is used.
	Dir string

	// Excludes are doublestar globs skipped in addition to the defaults.
	Excludes []string

	Logger logger.Logger
}

// ScanResult contains the outcome of a scan.
type ScanResult struct {
	Dir      string
	Findings []scanner.Finding
}

// Scan looks for secrets leaked into project files. The store, its lock and
// the runtime env file are always skipped. When anything is found the
// result is returned together with ErrSecretsDetected.
func Scan(ctx context.Context, opts ScanOptions) (*ScanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	config, err := configs.LoadConfig()
	if err != nil {
		return nil, err
	}

	dir := opts.Dir
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
	}

	s := scanner.New(opts.Excludes...)
	s.Excludes = append(s.Excludes,
		config.Secrets.StoreFile,
		config.Secrets.StoreFile+".lock",
		config.Secrets.RuntimeEnvFile,
	)
	s.Logger = opts.Logger

	findings, err := s.ScanDirectory(dir)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{Dir: dir, Findings: findings}
	if len(findings) > 0 {
		return result, fmt.Errorf("%w: %d finding(s) in %s", kerrors.ErrSecretsDetected, len(findings), dir)
	}
	return result, nil
}
