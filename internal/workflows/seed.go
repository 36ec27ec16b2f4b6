package workflows

import (
	"context"
	"fmt"
	"slices"

	"github.com/devforge/devforge/internal/secrets"
)

// SeedOptions configures the seed workflow.
type SeedOptions struct {
	ProjectOptions

	// Names are the secrets to generate, e.g. DATABASE_PASSWORD.
	Names []string

	// Length of each generated password. Zero means the default of 32.
	Length int

	// Overwrite replaces secrets that already exist.
	Overwrite bool
}

// SeedResult contains the outcome of a seed operation.
type SeedResult struct {
	// Initialized is true when Seed had to create the store.
	Initialized bool

	Generated []string
	Skipped   []string
}

// Seed initializes the store if needed and fills each named secret with a
// random password. This is how generated projects get their database and
// application credentials.
func Seed(ctx context.Context, opts SeedOptions) (*SeedResult, error) {
	for _, name := range opts.Names {
		if err := secrets.ValidateName(name); err != nil {
			return nil, err
		}
	}

	p, err := openProject(ctx, opts.ProjectOptions)
	if err != nil {
		return nil, err
	}

	created, err := p.store.InitStore()
	if err != nil {
		return nil, err
	}

	existing, err := p.store.List()
	if err != nil {
		return nil, err
	}

	result := &SeedResult{Initialized: created}
	for _, name := range opts.Names {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if !opts.Overwrite && slices.Contains(existing, name) {
			p.log.Infof("Keeping existing secret %s", name)
			result.Skipped = append(result.Skipped, name)
			continue
		}

		password, err := secrets.GeneratePassword(opts.Length)
		if err != nil {
			return result, err
		}
		if err := p.store.Set(name, password); err != nil {
			return result, fmt.Errorf("seeding %s: %w", name, err)
		}

		p.log.Infof("Generated secret %s", name)
		result.Generated = append(result.Generated, name)
		existing = append(existing, name)
	}

	return result, nil
}
