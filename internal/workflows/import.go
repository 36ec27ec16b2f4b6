package workflows

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/joho/godotenv"

	"github.com/devforge/devforge/internal/secrets"
)

// ImportOptions configures the import workflow.
type ImportOptions struct {
	ProjectOptions

	// Path is the dotenv file to read.
	Path string

	// Overwrite replaces secrets that already exist.
	Overwrite bool
}

// ImportResult contains the outcome of an import operation.
type ImportResult struct {
	Imported []string
	Skipped  []string
}

// Import reads a dotenv file and stores each variable as a secret. The
// whole file is validated before anything is written.
func Import(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	p, err := openProject(ctx, opts.ProjectOptions)
	if err != nil {
		return nil, err
	}

	env, err := godotenv.Read(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", opts.Path, err)
	}

	names := make([]string, 0, len(env))
	for name, value := range env {
		if err := secrets.ValidateName(name); err != nil {
			return nil, err
		}
		if err := secrets.ValidateValue(value); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	existing, err := p.store.List()
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if !opts.Overwrite && slices.Contains(existing, name) {
			result.Skipped = append(result.Skipped, name)
			continue
		}
		if err := p.store.Set(name, env[name]); err != nil {
			return result, fmt.Errorf("importing %s: %w", name, err)
		}
		result.Imported = append(result.Imported, name)
	}

	p.log.Infof("Imported %d secret(s) from %s", len(result.Imported), opts.Path)
	return result, nil
}
