package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/devforge/devforge/internal/errors"
)

const (
	DefaultStoreFile      = ".secrets.devforge"
	DefaultRuntimeEnvFile = ".env.secrets"
)

type Config struct {
	Secrets SecretsConfig `toml:"secrets"`
}

type SecretsConfig struct {
	// Keyring stores new project keys in the OS credential store. Keys
	// already there are read either way.
	Keyring bool `toml:"keyring"`

	// KeysDir overrides the directory holding fallback key files.
	KeysDir string `toml:"keys_dir"`

	StoreFile      string `toml:"store_file"`
	RuntimeEnvFile string `toml:"runtime_env_file"`
}

// DefaultConfig returns the configuration used when no config.toml exists.
func DefaultConfig() *Config {
	return &Config{
		Secrets: SecretsConfig{
			Keyring:        true,
			StoreFile:      DefaultStoreFile,
			RuntimeEnvFile: DefaultRuntimeEnvFile,
		},
	}
}

// ConfigPath returns the location of the user's config.toml.
func ConfigPath() string {
	return filepath.Join(UserDevforgeSettings.UserConfigsPath, "config.toml")
}

// LoadConfig loads the user configuration, filling gaps with defaults.
func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	configPath := ConfigPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	meta, err := LoadTOML(configPath, config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q in %s", kerrors.ErrInvalidConfig, undecoded[0].String(), configPath)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig writes the configuration to the user's config.toml.
func SaveConfig(config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	if err := SaveTOML(ConfigPath(), config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// Validate checks that file names are plain names and do not collide.
func (c *Config) Validate() error {
	for field, name := range map[string]string{
		"store_file":       c.Secrets.StoreFile,
		"runtime_env_file": c.Secrets.RuntimeEnvFile,
	} {
		if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
			return fmt.Errorf("%w: %s must be a plain file name, got %q", kerrors.ErrInvalidConfig, field, name)
		}
	}

	if c.Secrets.StoreFile == c.Secrets.RuntimeEnvFile {
		return fmt.Errorf("%w: store_file and runtime_env_file must differ", kerrors.ErrInvalidConfig)
	}

	return nil
}

// KeysDir returns the directory holding fallback key files.
func (c *Config) KeysDir() string {
	if c.Secrets.KeysDir != "" {
		return c.Secrets.KeysDir
	}
	return UserDevforgeSettings.UserKeysPath
}
