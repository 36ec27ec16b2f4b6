package keystore

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/zalando/go-keyring"

	kerrors "github.com/devforge/devforge/internal/errors"
)

// KeyringService is the service name devforge keys are filed under.
const KeyringService = "devforge"

// KeyringBackend stores the key in the OS credential store, with the
// project id as the account name.
type KeyringBackend struct {
	service  string
	user     string
	readOnly bool
}

func NewKeyringBackend(projectID string) KeyringBackend {
	return KeyringBackend{service: KeyringService, user: projectID}
}

// NewReadOnlyKeyringBackend loads keys stored in the keyring earlier but
// never stores new ones.
func NewReadOnlyKeyringBackend(projectID string) KeyringBackend {
	return KeyringBackend{service: KeyringService, user: projectID, readOnly: true}
}

func (k KeyringBackend) Name() string { return "keyring" }

func (k KeyringBackend) ReadOnly() bool { return k.readOnly }

func (k KeyringBackend) Load() ([]byte, error) {
	s, err := keyring.Get(k.service, k.user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, kerrors.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrBackendUnavailable, err)
	}

	// bypassed for utf-16 stores, but base64 decoding catches those too
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("%w: keyring entry is not utf-8", kerrors.ErrInvalidKeyLength)
	}

	key, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: keyring entry is not valid base64", kerrors.ErrInvalidKeyLength)
	}
	return key, nil
}

// Store refuses to replace an existing entry. The keyring has no atomic
// create, so the entry is read back after writing to detect a lost race.
func (k KeyringBackend) Store(key []byte) error {
	if k.readOnly {
		return fmt.Errorf("%w: keyring storage is disabled: %w", kerrors.ErrBackendUnavailable, errReadOnly)
	}

	if _, err := k.Load(); err == nil {
		return kerrors.ErrKeyExists
	} else if !errors.Is(err, kerrors.ErrKeyNotFound) {
		return err
	}

	if err := keyring.Set(k.service, k.user, base64.StdEncoding.EncodeToString(key)); err != nil {
		return fmt.Errorf("%w: %w", kerrors.ErrBackendUnavailable, err)
	}

	stored, err := k.Load()
	if err != nil {
		return err
	}
	if !bytes.Equal(stored, key) {
		return kerrors.ErrKeyExists
	}
	return nil
}
