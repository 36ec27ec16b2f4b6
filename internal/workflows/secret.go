package workflows

import (
	"context"
	"fmt"
	"slices"

	kerrors "github.com/devforge/devforge/internal/errors"
)

// SetOptions configures the set workflow.
type SetOptions struct {
	ProjectOptions

	Name  string
	Value string
}

// SetResult contains the outcome of a set operation.
type SetResult struct {
	Name string

	// Replaced is true when the secret existed before.
	Replaced bool
}

// Set encrypts and stores a single secret.
func Set(ctx context.Context, opts SetOptions) (*SetResult, error) {
	p, err := openProject(ctx, opts.ProjectOptions)
	if err != nil {
		return nil, err
	}

	names, err := p.store.List()
	if err != nil {
		return nil, err
	}

	if err := p.store.Set(opts.Name, opts.Value); err != nil {
		return nil, err
	}

	return &SetResult{
		Name:     opts.Name,
		Replaced: slices.Contains(names, opts.Name),
	}, nil
}

// GetOptions configures the get workflow.
type GetOptions struct {
	ProjectOptions

	Name string
}

// GetResult contains a decrypted secret.
type GetResult struct {
	Name  string
	Value string
}

// Get decrypts a single secret. A missing secret is ErrSecretNotFound.
func Get(ctx context.Context, opts GetOptions) (*GetResult, error) {
	p, err := openProject(ctx, opts.ProjectOptions)
	if err != nil {
		return nil, err
	}

	value, ok, err := p.store.Get(opts.Name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrSecretNotFound, opts.Name)
	}

	return &GetResult{Name: opts.Name, Value: value}, nil
}

// ListOptions configures the list workflow.
type ListOptions struct {
	ProjectOptions
}

// ListResult contains the names in the store.
type ListResult struct {
	Names     []string
	StorePath string
}

// List returns the sorted secret names. It never needs the key.
func List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	p, err := openProject(ctx, opts.ProjectOptions)
	if err != nil {
		return nil, err
	}

	names, err := p.store.List()
	if err != nil {
		return nil, err
	}

	return &ListResult{Names: names, StorePath: p.store.Path()}, nil
}
