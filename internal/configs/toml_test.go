package configs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoadTOML(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "nested", "test.toml")

	type TestStruct struct {
		Name    string
		Enabled bool
	}

	originalData := TestStruct{Name: "devforge", Enabled: true}

	if err := SaveTOML(testFile, originalData); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	loadedData := TestStruct{}
	if _, err := LoadTOML(testFile, &loadedData); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}

	if loadedData != originalData {
		t.Errorf("Expected %+v, got %+v", originalData, loadedData)
	}
}

func TestLoadTOMLNonExistent(t *testing.T) {
	var data struct{ Name string }
	if _, err := LoadTOML(filepath.Join(t.TempDir(), "missing.toml"), &data); err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
}

func TestSaveTOMLReplacesExisting(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "replace.toml")

	if err := SaveTOML(testFile, struct{ Value string }{"first"}); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}
	if err := SaveTOML(testFile, struct{ Value string }{"second"}); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	data, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "Value = \"second\"\n" {
		t.Errorf("Unexpected content: %q", string(data))
	}
}
