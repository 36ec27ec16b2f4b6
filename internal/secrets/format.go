package secrets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/natefinch/atomic"

	kerrors "github.com/devforge/devforge/internal/errors"
)

const formatVersion = 1

type storeFile struct {
	Version   int              `json:"version"`
	ProjectID string           `json:"project_id"`
	Cipher    string           `json:"cipher"`
	CreatedAt time.Time        `json:"created_at"`

	// KeyCheck seals an empty value so a wrong key is caught before any
	// entry is written with it.
	KeyCheck *entry `json:"key_check,omitempty"`

	Entries map[string]entry `json:"entries"`
}

type entry struct {
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
	Tag        string `json:"tag"`
}

func newStoreFile(projectID string) *storeFile {
	return &storeFile{
		Version:   formatVersion,
		ProjectID: projectID,
		Cipher:    cipherName,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Entries:   map[string]entry{},
	}
}

// readStoreFile loads and validates the store at path.
func readStoreFile(path string) (*storeFile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, kerrors.ErrStoreNotInitialized
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", kerrors.ErrStoreIO, path, err)
	}

	var sf storeFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("%w: %s is not a valid store file: %w", kerrors.ErrCorruptStore, path, err)
	}

	if sf.Version != formatVersion {
		return nil, fmt.Errorf("%w: version %d (supported: %d)", kerrors.ErrIncompatibleStore, sf.Version, formatVersion)
	}
	if sf.Cipher != cipherName {
		return nil, fmt.Errorf("%w: cipher %q (supported: %q)", kerrors.ErrIncompatibleStore, sf.Cipher, cipherName)
	}
	if sf.ProjectID == "" {
		return nil, fmt.Errorf("%w: %s has no project id", kerrors.ErrCorruptStore, path)
	}
	if sf.Entries == nil {
		sf.Entries = map[string]entry{}
	}

	return &sf, nil
}

// writeStoreFile atomically replaces path with sf.
func writeStoreFile(path string, sf *storeFile) error {
	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}
	data = append(data, '\n')

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", kerrors.ErrStoreIO, path, err)
	}

	return nil
}
