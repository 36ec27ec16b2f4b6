package configs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	kerrors "github.com/devforge/devforge/internal/errors"
)

func withUserSettings(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	original := UserDevforgeSettings
	UserDevforgeSettings = &UserSettings{
		UserConfigsPath: filepath.Join(tempDir, "config"),
		UserKeysPath:    filepath.Join(tempDir, "keys"),
	}
	t.Cleanup(func() { UserDevforgeSettings = original })

	return tempDir
}

func TestLoadConfigDefaults(t *testing.T) {
	withUserSettings(t)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if !config.Secrets.Keyring {
		t.Error("Expected keyring to be enabled by default")
	}
	if config.Secrets.StoreFile != DefaultStoreFile {
		t.Errorf("Expected store file %q, got %q", DefaultStoreFile, config.Secrets.StoreFile)
	}
	if config.Secrets.RuntimeEnvFile != DefaultRuntimeEnvFile {
		t.Errorf("Expected runtime env file %q, got %q", DefaultRuntimeEnvFile, config.Secrets.RuntimeEnvFile)
	}
	if config.KeysDir() != UserDevforgeSettings.UserKeysPath {
		t.Errorf("Expected keys dir %q, got %q", UserDevforgeSettings.UserKeysPath, config.KeysDir())
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	tempDir := withUserSettings(t)

	config := DefaultConfig()
	config.Secrets.Keyring = false
	config.Secrets.KeysDir = filepath.Join(tempDir, "custom-keys")

	if err := SaveConfig(config); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.Secrets.Keyring {
		t.Error("Expected keyring to stay disabled")
	}
	if loaded.KeysDir() != config.Secrets.KeysDir {
		t.Errorf("Expected keys dir %q, got %q", config.Secrets.KeysDir, loaded.KeysDir())
	}
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	withUserSettings(t)

	if err := os.MkdirAll(UserDevforgeSettings.UserConfigsPath, 0700); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(ConfigPath(), []byte("[secrets]\nkeyring = false\n"), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Secrets.Keyring {
		t.Error("Expected keyring = false from file")
	}
	if config.Secrets.StoreFile != DefaultStoreFile {
		t.Errorf("Expected default store file, got %q", config.Secrets.StoreFile)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	withUserSettings(t)

	if err := os.MkdirAll(UserDevforgeSettings.UserConfigsPath, 0700); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(ConfigPath(), []byte("[secrets]\nkeyrnig = false\n"), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	_, err := LoadConfig()
	if !errors.Is(err, kerrors.ErrInvalidConfig) {
		t.Fatalf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"store file with separator", func(c *Config) { c.Secrets.StoreFile = "dir/store" }, true},
		{"empty runtime env file", func(c *Config) { c.Secrets.RuntimeEnvFile = "" }, true},
		{"same names", func(c *Config) { c.Secrets.RuntimeEnvFile = c.Secrets.StoreFile }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveProjectWalksUp(t *testing.T) {
	withUserSettings(t)
	config := DefaultConfig()

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, DefaultStoreFile), []byte("{}"), 0600); err != nil {
		t.Fatalf("Failed to create store marker: %v", err)
	}
	nested := filepath.Join(root, "backend", "app")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("Failed to create nested dir: %v", err)
	}

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(nested); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(originalWd) })

	project, err := ResolveProject("", config)
	if err != nil {
		t.Fatalf("ResolveProject failed: %v", err)
	}

	wantRoot, _ := filepath.EvalSymlinks(root)
	gotRoot, _ := filepath.EvalSymlinks(project.ProjectPath)
	if gotRoot != wantRoot {
		t.Errorf("Expected project root %q, got %q", wantRoot, gotRoot)
	}
	if filepath.Base(project.RuntimeEnvPath) != DefaultRuntimeEnvFile {
		t.Errorf("Unexpected runtime env path %q", project.RuntimeEnvPath)
	}
}

func TestResolveProjectExplicit(t *testing.T) {
	withUserSettings(t)

	dir := t.TempDir()
	project, err := ResolveProject(dir, DefaultConfig())
	if err != nil {
		t.Fatalf("ResolveProject failed: %v", err)
	}
	if project.StorePath != filepath.Join(dir, DefaultStoreFile) {
		t.Errorf("Unexpected store path %q", project.StorePath)
	}
}
