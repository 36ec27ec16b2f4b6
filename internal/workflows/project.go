package workflows

import (
	"context"
	"fmt"

	"github.com/devforge/devforge/internal/configs"
	"github.com/devforge/devforge/internal/keystore"
	logger "github.com/devforge/devforge/internal/logging"
	"github.com/devforge/devforge/internal/secrets"
)

// ProjectOptions selects the project a workflow runs against.
type ProjectOptions struct {
	// ProjectPath is the project root. If empty, the nearest directory
	// holding the store file is used, falling back to the working directory.
	ProjectPath string

	// Logger receives progress messages. Secret values are never logged.
	Logger logger.Logger
}

// project bundles everything a workflow needs to touch the store.
type project struct {
	config   *configs.Config
	settings *configs.ProjectSettings
	store    *secrets.Store
	log      logger.Logger
}

func openProject(ctx context.Context, opts ProjectOptions) (*project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	config, err := configs.LoadConfig()
	if err != nil {
		return nil, err
	}

	settings, err := configs.ResolveProject(opts.ProjectPath, config)
	if err != nil {
		return nil, fmt.Errorf("resolving project: %w", err)
	}
	opts.Logger.Debugf("Using project %s", settings.ProjectPath)

	return &project{
		config:   config,
		settings: settings,
		store:    newStore(settings, config, opts.Logger),
		log:      opts.Logger,
	}, nil
}

func newStore(settings *configs.ProjectSettings, config *configs.Config, log logger.Logger) *secrets.Store {
	keysDir := config.KeysDir()
	useKeyring := config.Secrets.Keyring

	return secrets.Open(settings.ProjectPath,
		secrets.WithStoreFile(config.Secrets.StoreFile),
		secrets.WithRuntimeEnvFile(config.Secrets.RuntimeEnvFile),
		secrets.WithLogger(log),
		secrets.WithKeySource(func(projectID string, check keystore.KeyCheck) secrets.KeySource {
			return keystore.ForProject(keystore.Options{
				ProjectID: projectID,
				KeysDir:   keysDir,
				Keyring:   useKeyring,
				Check:     check,
				Logger:    log,
			})
		}),
	)
}
