package workflows

import (
	"context"
	"fmt"
	"os"
)

// InitOptions configures the init workflow.
type InitOptions struct {
	ProjectOptions
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	// Created is false when a store already existed.
	Created bool

	ProjectID   string
	ProjectPath string
	StorePath   string
}

// Init creates an empty secret store for the project. It is idempotent:
// an existing store is reported, not modified.
//
// Unlike other workflows, Init without a ProjectPath uses the working
// directory rather than searching parent directories.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	if opts.ProjectPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		opts.ProjectPath = wd
	}

	p, err := openProject(ctx, opts.ProjectOptions)
	if err != nil {
		return nil, err
	}

	created, err := p.store.InitStore()
	if err != nil {
		return nil, err
	}

	projectID, err := p.store.ProjectID()
	if err != nil {
		return nil, err
	}

	return &InitResult{
		Created:     created,
		ProjectID:   projectID,
		ProjectPath: p.settings.ProjectPath,
		StorePath:   p.store.Path(),
	}, nil
}
