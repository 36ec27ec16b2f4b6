package workflows

import (
	"bytes"
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/devforge/devforge/internal/configs"
	kerrors "github.com/devforge/devforge/internal/errors"
	"github.com/devforge/devforge/internal/keystore"
)

// setupWorkflowTest isolates user settings and the keyring, and returns a
// fresh project directory.
func setupWorkflowTest(t *testing.T) (string, ProjectOptions) {
	t.Helper()
	keyring.MockInit()
	t.Setenv(keystore.EnvVar, "")

	home := t.TempDir()
	original := configs.UserDevforgeSettings
	configs.UserDevforgeSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(home, "config"),
		UserKeysPath:    filepath.Join(home, "keys"),
	}
	t.Cleanup(func() { configs.UserDevforgeSettings = original })

	projectDir := t.TempDir()
	return projectDir, ProjectOptions{ProjectPath: projectDir}
}

func TestInitWorkflow(t *testing.T) {
	ctx := context.Background()
	projectDir, opts := setupWorkflowTest(t)

	result, err := Init(ctx, InitOptions{ProjectOptions: opts})
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.NotEmpty(t, result.ProjectID)
	assert.Equal(t, filepath.Join(projectDir, configs.DefaultStoreFile), result.StorePath)

	again, err := Init(ctx, InitOptions{ProjectOptions: opts})
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, result.ProjectID, again.ProjectID)
}

func TestSetGetListWorkflows(t *testing.T) {
	ctx := context.Background()
	_, opts := setupWorkflowTest(t)

	_, err := Set(ctx, SetOptions{ProjectOptions: opts, Name: "API_KEY", Value: "k1"})
	require.ErrorIs(t, err, kerrors.ErrStoreNotInitialized)

	_, err = Init(ctx, InitOptions{ProjectOptions: opts})
	require.NoError(t, err)

	set, err := Set(ctx, SetOptions{ProjectOptions: opts, Name: "API_KEY", Value: "k1"})
	require.NoError(t, err)
	assert.False(t, set.Replaced)

	set, err = Set(ctx, SetOptions{ProjectOptions: opts, Name: "API_KEY", Value: "k2"})
	require.NoError(t, err)
	assert.True(t, set.Replaced)

	got, err := Get(ctx, GetOptions{ProjectOptions: opts, Name: "API_KEY"})
	require.NoError(t, err)
	assert.Equal(t, "k2", got.Value)

	_, err = Get(ctx, GetOptions{ProjectOptions: opts, Name: "MISSING"})
	assert.ErrorIs(t, err, kerrors.ErrSecretNotFound)

	list, err := List(ctx, ListOptions{ProjectOptions: opts})
	require.NoError(t, err)
	assert.Equal(t, []string{"API_KEY"}, list.Names)
}

func TestWorkflowsHonorConfig(t *testing.T) {
	ctx := context.Background()
	projectDir, opts := setupWorkflowTest(t)

	config := configs.DefaultConfig()
	config.Secrets.Keyring = false
	config.Secrets.StoreFile = "vault.json"
	config.Secrets.RuntimeEnvFile = "runtime.env"
	require.NoError(t, configs.SaveConfig(config))

	initResult, err := Init(ctx, InitOptions{ProjectOptions: opts})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(projectDir, "vault.json"))

	_, err = Set(ctx, SetOptions{ProjectOptions: opts, Name: "TOKEN", Value: "t1"})
	require.NoError(t, err)

	// Keyring disabled, so the key went to the fallback file.
	assert.FileExists(t, filepath.Join(configs.UserDevforgeSettings.UserKeysPath, initResult.ProjectID+".key"))
	_, err = keyring.Get(keystore.KeyringService, initResult.ProjectID)
	assert.ErrorIs(t, err, keyring.ErrNotFound)

	injected, err := Inject(ctx, InjectOptions{ProjectOptions: opts})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(projectDir, "runtime.env"), injected.Path)
}

func TestKeyringToggleKeepsProjectKey(t *testing.T) {
	ctx := context.Background()
	_, opts := setupWorkflowTest(t)

	initResult, err := Init(ctx, InitOptions{ProjectOptions: opts})
	require.NoError(t, err)
	_, err = Set(ctx, SetOptions{ProjectOptions: opts, Name: "DB", Value: "p1"})
	require.NoError(t, err)

	config := configs.DefaultConfig()
	config.Secrets.Keyring = false
	require.NoError(t, configs.SaveConfig(config))

	_, err = Set(ctx, SetOptions{ProjectOptions: opts, Name: "OTHER", Value: "o1"})
	require.NoError(t, err)

	for name, want := range map[string]string{"DB": "p1", "OTHER": "o1"} {
		got, err := Get(ctx, GetOptions{ProjectOptions: opts, Name: name})
		require.NoError(t, err, "reading %s after disabling the keyring", name)
		assert.Equal(t, want, got.Value)
	}

	// The keyring key is still the project key; no file key was made.
	keyPath := filepath.Join(configs.UserDevforgeSettings.UserKeysPath, initResult.ProjectID+".key")
	_, err = os.Stat(keyPath)
	assert.True(t, os.IsNotExist(err))

	config.Secrets.Keyring = true
	require.NoError(t, configs.SaveConfig(config))
	got, err := Get(ctx, GetOptions{ProjectOptions: opts, Name: "OTHER"})
	require.NoError(t, err)
	assert.Equal(t, "o1", got.Value)
}

func TestStaleKeyIsSkipped(t *testing.T) {
	ctx := context.Background()
	_, opts := setupWorkflowTest(t)

	_, err := Init(ctx, InitOptions{ProjectOptions: opts})
	require.NoError(t, err)
	_, err = Set(ctx, SetOptions{ProjectOptions: opts, Name: "DB", Value: "p1"})
	require.NoError(t, err)

	// A key for some other store in the environment is passed over in
	// favour of the keyring key that opens this one.
	t.Setenv(keystore.EnvVar, base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{9}, keystore.KeySize)))

	_, err = Set(ctx, SetOptions{ProjectOptions: opts, Name: "OTHER", Value: "o1"})
	require.NoError(t, err)
	got, err := Get(ctx, GetOptions{ProjectOptions: opts, Name: "DB"})
	require.NoError(t, err)
	assert.Equal(t, "p1", got.Value)
}

func TestMissingKeyFailsBeforeWriting(t *testing.T) {
	ctx := context.Background()
	projectDir, opts := setupWorkflowTest(t)

	_, err := Init(ctx, InitOptions{ProjectOptions: opts})
	require.NoError(t, err)
	_, err = Set(ctx, SetOptions{ProjectOptions: opts, Name: "DB", Value: "p1"})
	require.NoError(t, err)

	storePath := filepath.Join(projectDir, configs.DefaultStoreFile)
	before, err := os.ReadFile(storePath)
	require.NoError(t, err)

	// The keyring that holds the key is gone, so only a new key could be
	// made, and it would not open the store.
	keyring.MockInit()

	_, err = Set(ctx, SetOptions{ProjectOptions: opts, Name: "OTHER", Value: "o1"})
	assert.ErrorIs(t, err, kerrors.ErrKeyAcquisition)
	assert.ErrorIs(t, err, kerrors.ErrKeyMismatch)

	after, err := os.ReadFile(storePath)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	entries, err := os.ReadDir(configs.UserDevforgeSettings.UserKeysPath)
	if err == nil {
		for _, e := range entries {
			assert.NotContains(t, e.Name(), ".key", "no replacement key may be written")
		}
	}
}

func TestInjectWorkflow(t *testing.T) {
	ctx := context.Background()
	projectDir, opts := setupWorkflowTest(t)

	_, err := Init(ctx, InitOptions{ProjectOptions: opts})
	require.NoError(t, err)
	for name, value := range map[string]string{"DATABASE_PASSWORD": "p1", "API_KEY": "k1"} {
		_, err := Set(ctx, SetOptions{ProjectOptions: opts, Name: name, Value: value})
		require.NoError(t, err)
	}

	result, err := Inject(ctx, InjectOptions{ProjectOptions: opts})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, filepath.Join(projectDir, configs.DefaultRuntimeEnvFile), result.Path)

	env, err := godotenv.Read(result.Path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"DATABASE_PASSWORD": "p1", "API_KEY": "k1"}, env)

	custom := filepath.Join(t.TempDir(), "ci.env")
	result, err = Inject(ctx, InjectOptions{ProjectOptions: opts, OutputPath: custom})
	require.NoError(t, err)
	assert.Equal(t, custom, result.Path)
}

func TestSeedWorkflow(t *testing.T) {
	ctx := context.Background()
	_, opts := setupWorkflowTest(t)

	result, err := Seed(ctx, SeedOptions{
		ProjectOptions: opts,
		Names:          []string{"DATABASE_PASSWORD", "SECRET_KEY"},
		Length:         24,
	})
	require.NoError(t, err)
	assert.True(t, result.Initialized)
	assert.Equal(t, []string{"DATABASE_PASSWORD", "SECRET_KEY"}, result.Generated)

	first, err := Get(ctx, GetOptions{ProjectOptions: opts, Name: "DATABASE_PASSWORD"})
	require.NoError(t, err)
	assert.Len(t, first.Value, 24)

	result, err = Seed(ctx, SeedOptions{ProjectOptions: opts, Names: []string{"DATABASE_PASSWORD", "JWT_SECRET"}})
	require.NoError(t, err)
	assert.False(t, result.Initialized)
	assert.Equal(t, []string{"DATABASE_PASSWORD"}, result.Skipped)
	assert.Equal(t, []string{"JWT_SECRET"}, result.Generated)

	kept, err := Get(ctx, GetOptions{ProjectOptions: opts, Name: "DATABASE_PASSWORD"})
	require.NoError(t, err)
	assert.Equal(t, first.Value, kept.Value)

	result, err = Seed(ctx, SeedOptions{ProjectOptions: opts, Names: []string{"DATABASE_PASSWORD"}, Overwrite: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"DATABASE_PASSWORD"}, result.Generated)

	replaced, err := Get(ctx, GetOptions{ProjectOptions: opts, Name: "DATABASE_PASSWORD"})
	require.NoError(t, err)
	assert.NotEqual(t, first.Value, replaced.Value)

	_, err = Seed(ctx, SeedOptions{ProjectOptions: opts, Names: []string{"bad-name"}})
	assert.ErrorIs(t, err, kerrors.ErrInvalidSecretName)
}

func TestImportWorkflow(t *testing.T) {
	ctx := context.Background()
	projectDir, opts := setupWorkflowTest(t)

	_, err := Init(ctx, InitOptions{ProjectOptions: opts})
	require.NoError(t, err)
	_, err = Set(ctx, SetOptions{ProjectOptions: opts, Name: "EXISTING", Value: "keep"})
	require.NoError(t, err)

	envFile := filepath.Join(projectDir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("# comment\nEXISTING=replace\nexport NEW_ONE=\"quoted value\"\nOTHER=x\n"), 0600))

	result, err := Import(ctx, ImportOptions{ProjectOptions: opts, Path: envFile})
	require.NoError(t, err)
	assert.Equal(t, []string{"NEW_ONE", "OTHER"}, result.Imported)
	assert.Equal(t, []string{"EXISTING"}, result.Skipped)

	got, err := Get(ctx, GetOptions{ProjectOptions: opts, Name: "NEW_ONE"})
	require.NoError(t, err)
	assert.Equal(t, "quoted value", got.Value)

	result, err = Import(ctx, ImportOptions{ProjectOptions: opts, Path: envFile, Overwrite: true})
	require.NoError(t, err)
	assert.Len(t, result.Imported, 3)

	got, err = Get(ctx, GetOptions{ProjectOptions: opts, Name: "EXISTING"})
	require.NoError(t, err)
	assert.Equal(t, "replace", got.Value)
}

func TestImportRejectsMultilineValues(t *testing.T) {
	ctx := context.Background()
	projectDir, opts := setupWorkflowTest(t)

	_, err := Init(ctx, InitOptions{ProjectOptions: opts})
	require.NoError(t, err)

	envFile := filepath.Join(projectDir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("GOOD=1\nCERT=\"line1\nline2\"\n"), 0600))

	_, err = Import(ctx, ImportOptions{ProjectOptions: opts, Path: envFile})
	assert.ErrorIs(t, err, kerrors.ErrInvalidSecretValue)

	list, err := List(ctx, ListOptions{ProjectOptions: opts})
	require.NoError(t, err)
	assert.Empty(t, list.Names, "nothing is written when validation fails")
}

func TestScanWorkflow(t *testing.T) {
	ctx := context.Background()
	projectDir, opts := setupWorkflowTest(t)

	result, err := Scan(ctx, ScanOptions{Dir: projectDir})
	require.NoError(t, err)
	assert.Empty(t, result.Findings)

	// The runtime env file holds plaintext by design and is never flagged.
	_, err = Seed(ctx, SeedOptions{ProjectOptions: opts, Names: []string{"DATABASE_PASSWORD"}})
	require.NoError(t, err)
	_, err = Inject(ctx, InjectOptions{ProjectOptions: opts})
	require.NoError(t, err)

	result, err = Scan(ctx, ScanOptions{Dir: projectDir})
	require.NoError(t, err)
	assert.Empty(t, result.Findings)

	leak := filepath.Join(projectDir, "settings.py")
	require.NoError(t, os.WriteFile(leak, []byte(`database_password = "super_secret_pass123"`), 0600))

	result, err = Scan(ctx, ScanOptions{Dir: projectDir})
	assert.ErrorIs(t, err, kerrors.ErrSecretsDetected)
	require.NotNil(t, result)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, "settings.py", result.Findings[0].Path)

	result, err = Scan(ctx, ScanOptions{Dir: projectDir, Excludes: []string{"*.py"}})
	require.NoError(t, err)
	assert.Empty(t, result.Findings)
}

func TestWorkflowsRespectCancelledContext(t *testing.T) {
	_, opts := setupWorkflowTest(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Init(ctx, InitOptions{ProjectOptions: opts})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = Scan(ctx, ScanOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}
