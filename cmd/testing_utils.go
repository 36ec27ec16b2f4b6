// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for setting up test environments,
// capturing output, and running the CLI in-process.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"

	"github.com/devforge/devforge/internal/configs"
	"github.com/devforge/devforge/internal/keystore"
)

// setupTestEnvironment isolates user settings and the keyring, changes into
// a fresh project directory and returns it.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	keyring.MockInit()
	t.Setenv(keystore.EnvVar, "")

	userDir := t.TempDir()
	projectDir := t.TempDir()

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	originalUserSettings := configs.UserDevforgeSettings

	if err := os.Chdir(projectDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	configs.UserDevforgeSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(userDir, "config"),
		UserKeysPath:    filepath.Join(userDir, "keys"),
	}
	ResetGlobalState()
	ResetConfigState()

	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		configs.UserDevforgeSettings = originalUserSettings
		ResetGlobalState()
		ResetConfigState()
	})

	return projectDir
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stdoutChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stderrChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

// newTestRoot builds a root command the way main does.
func newTestRoot(args ...string) *cobra.Command {
	root := &cobra.Command{
		Use:           "devforge",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(SecretsCmd)
	root.AddCommand(ConfigCmd)
	root.SetArgs(args)
	return root
}

// runCLI executes the CLI in-process with fresh flag state.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	ResetGlobalState()
	ResetConfigState()
	return captureOutput(newTestRoot(args...).Execute)
}

// withStdin replaces os.Stdin with a pipe holding input for the duration of fn.
func withStdin(t *testing.T, input string, fn func()) {
	t.Helper()

	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	if _, err := writer.WriteString(input); err != nil {
		t.Fatalf("Failed to write stdin: %v", err)
	}
	writer.Close()

	original := os.Stdin
	os.Stdin = reader
	defer func() {
		os.Stdin = original
		reader.Close()
	}()

	fn()
}
