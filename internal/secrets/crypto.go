package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/chacha20poly1305"

	kerrors "github.com/devforge/devforge/internal/errors"
)

const (
	cipherName = "xchacha20-poly1305"
	tagSize    = chacha20poly1305.Overhead

	// keyCheckName is the associated data of the key check. It is not a
	// valid secret name, so no entry can be swapped in for it.
	keyCheckName = "devforge:key-check"
)

// sealEntry encrypts value for name under the key held in enclave.
func sealEntry(enclave *memguard.Enclave, name, value string) (entry, error) {
	key, err := enclave.Open()
	if err != nil {
		return entry{}, fmt.Errorf("%w: failed to open key enclave: %w", kerrors.ErrKeyAcquisition, err)
	}
	defer key.Destroy()

	return seal(key.Bytes(), name, value)
}

// openEntry authenticates and decrypts the entry stored under name.
func openEntry(enclave *memguard.Enclave, name string, e entry) (string, error) {
	key, err := enclave.Open()
	if err != nil {
		return "", fmt.Errorf("%w: failed to open key enclave: %w", kerrors.ErrKeyAcquisition, err)
	}
	defer key.Destroy()

	return open(key.Bytes(), name, e)
}

// checkKey reports whether key opens the store's key check. Stores without
// one are not bound to a key yet and accept any key.
func checkKey(sf *storeFile, key []byte) error {
	if sf.KeyCheck == nil {
		return nil
	}
	if _, err := open(key, keyCheckName, *sf.KeyCheck); err != nil {
		return fmt.Errorf("%w: project %s", kerrors.ErrKeyMismatch, sf.ProjectID)
	}
	return nil
}

// checkEnclave is checkKey for a key held in an enclave.
func checkEnclave(sf *storeFile, enclave *memguard.Enclave) error {
	if sf.KeyCheck == nil {
		return nil
	}

	key, err := enclave.Open()
	if err != nil {
		return fmt.Errorf("%w: failed to open key enclave: %w", kerrors.ErrKeyAcquisition, err)
	}
	defer key.Destroy()

	if err := checkKey(sf, key.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", kerrors.ErrKeyAcquisition, err)
	}
	return nil
}

func seal(key []byte, name, value string) (entry, error) {
	chacha, err := chacha20poly1305.NewX(key)
	if err != nil {
		return entry{}, fmt.Errorf("%w: %w", kerrors.ErrInvalidKeyLength, err)
	}

	nonce := make([]byte, chacha.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return entry{}, fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := chacha.Seal(nil, nonce, []byte(value), []byte(name))
	split := len(sealed) - tagSize

	return entry{
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(sealed[:split]),
		Tag:        base64.StdEncoding.EncodeToString(sealed[split:]),
	}, nil
}

func open(key []byte, name string, e entry) (string, error) {
	nonce, err := base64.StdEncoding.DecodeString(e.Nonce)
	if err != nil {
		return "", fmt.Errorf("%w: entry %q has a malformed nonce", kerrors.ErrCorruptStore, name)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(e.Ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: entry %q has malformed ciphertext", kerrors.ErrCorruptStore, name)
	}
	tag, err := base64.StdEncoding.DecodeString(e.Tag)
	if err != nil {
		return "", fmt.Errorf("%w: entry %q has a malformed tag", kerrors.ErrCorruptStore, name)
	}
	if len(nonce) != chacha20poly1305.NonceSizeX || len(tag) != tagSize {
		return "", fmt.Errorf("%w: entry %q has an unexpected size", kerrors.ErrCorruptStore, name)
	}

	chacha, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", kerrors.ErrInvalidKeyLength, err)
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := chacha.Open(nil, nonce, sealed, []byte(name))
	if err != nil {
		return "", fmt.Errorf("%w: entry %q failed authentication (wrong key or tampered file)", kerrors.ErrCorruptStore, name)
	}

	return string(plaintext), nil
}
