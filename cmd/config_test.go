package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/devforge/devforge/internal/configs"
)

func TestConfigShow(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	for _, want := range []string{"Keyring:", configs.DefaultStoreFile, configs.DefaultRuntimeEnvFile} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}
}

func TestConfigSetKeyring(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "config", "set-keyring", "false")
	if err != nil {
		t.Fatalf("set-keyring failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "OS keyring disabled") {
		t.Errorf("Unexpected output: %s", output)
	}

	output, err = runCLI(t, "config", "show", "--json")
	if err != nil {
		t.Fatalf("config show --json failed: %v", err)
	}

	var view configView
	if err := json.Unmarshal([]byte(output), &view); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, output)
	}
	if view.Keyring {
		t.Error("Expected keyring to be disabled")
	}
	if view.KeysDir != configs.UserDevforgeSettings.UserKeysPath {
		t.Errorf("Expected keys dir %q, got %q", configs.UserDevforgeSettings.UserKeysPath, view.KeysDir)
	}

	if _, err := runCLI(t, "config", "set-keyring", "maybe"); err == nil {
		t.Error("Expected error for non-boolean argument")
	}
}
