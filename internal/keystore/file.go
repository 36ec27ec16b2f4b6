package keystore

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/devforge/devforge/internal/errors"
)

// FileBackend keeps the key in <dir>/<project_id>.key.
type FileBackend struct {
	dir  string
	path string
}

func NewFileBackend(dir, projectID string) FileBackend {
	return FileBackend{dir: dir, path: filepath.Join(dir, projectID+".key")}
}

func (f FileBackend) Name() string { return "file" }

// Path returns the key file location.
func (f FileBackend) Path() string { return f.path }

func (f FileBackend) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, kerrors.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrBackendUnavailable, err)
	}

	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: key file %s is not valid base64", kerrors.ErrInvalidKeyLength, f.path)
	}
	return key, nil
}

// Store writes the key to a temp file and hard-links it into place, so the
// key file only ever appears complete and an existing one is never replaced.
func (f FileBackend) Store(key []byte) error {
	if err := os.MkdirAll(f.dir, 0700); err != nil {
		return fmt.Errorf("%w: failed to create key directory: %w", kerrors.ErrBackendUnavailable, err)
	}

	tmp, err := os.CreateTemp(f.dir, ".key-*")
	if err != nil {
		return fmt.Errorf("%w: %w", kerrors.ErrBackendUnavailable, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", kerrors.ErrBackendUnavailable, err)
	}
	if _, err := tmp.WriteString(base64.StdEncoding.EncodeToString(key) + "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", kerrors.ErrBackendUnavailable, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", kerrors.ErrBackendUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", kerrors.ErrBackendUnavailable, err)
	}

	if err := os.Link(tmpPath, f.path); err != nil {
		if os.IsExist(err) {
			return kerrors.ErrKeyExists
		}
		return fmt.Errorf("%w: %w", kerrors.ErrBackendUnavailable, err)
	}
	return nil
}
