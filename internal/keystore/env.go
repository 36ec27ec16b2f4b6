package keystore

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	kerrors "github.com/devforge/devforge/internal/errors"
)

// EnvVar holds a base64 project key for hosts without a keyring, like CI.
const EnvVar = "DEVFORGE_SECRETS_KEY"

// EnvBackend reads the key from EnvVar. It never stores.
type EnvBackend struct{}

func (EnvBackend) Name() string { return "env" }

func (EnvBackend) Load() ([]byte, error) {
	s := strings.TrimSpace(os.Getenv(EnvVar))
	if s == "" {
		return nil, kerrors.ErrKeyNotFound
	}

	key, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not valid base64", kerrors.ErrInvalidKeyLength, EnvVar)
	}
	return key, nil
}

func (EnvBackend) Store([]byte) error {
	return fmt.Errorf("%w: %s: %w", kerrors.ErrBackendUnavailable, EnvVar, errReadOnly)
}

func (EnvBackend) ReadOnly() bool { return true }
