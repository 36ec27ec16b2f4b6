package workflows

import "context"

// InjectOptions configures the inject workflow.
type InjectOptions struct {
	ProjectOptions

	// OutputPath overrides the configured runtime env file.
	OutputPath string
}

// InjectResult contains the outcome of an inject operation.
type InjectResult struct {
	Path  string
	Count int
}

// Inject writes every secret as NAME=value to the runtime env file.
func Inject(ctx context.Context, opts InjectOptions) (*InjectResult, error) {
	p, err := openProject(ctx, opts.ProjectOptions)
	if err != nil {
		return nil, err
	}

	path, err := p.store.Inject(opts.OutputPath)
	if err != nil {
		return nil, err
	}

	// Inject and List see the same store unless another writer raced us,
	// in which case the count is only informational.
	names, err := p.store.List()
	if err != nil {
		return nil, err
	}

	return &InjectResult{Path: path, Count: len(names)}, nil
}
