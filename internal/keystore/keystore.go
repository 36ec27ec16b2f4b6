package keystore

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/awnumar/memguard"
	"github.com/gofrs/flock"

	kerrors "github.com/devforge/devforge/internal/errors"
	logger "github.com/devforge/devforge/internal/logging"
)

// KeySize is the length in bytes of an XChaCha20-Poly1305 key.
const KeySize = 32

// Backend is one place a project key can live.
//
// Load returns ErrKeyNotFound when the backend holds nothing and
// ErrBackendUnavailable when the facility cannot be used. Store returns
// ErrKeyExists when another creator stored a key first.
type Backend interface {
	Name() string
	Load() ([]byte, error)
	Store(key []byte) error
}

// KeyCheck reports whether key is the one a store was sealed with. It
// returns nil when the store is not bound to a key yet and an error
// wrapping ErrKeyMismatch when key cannot open it.
type KeyCheck func(key []byte) error

// errReadOnly marks backends that only ever load.
var errReadOnly = errors.New("backend is read-only")

type readOnlyBackend interface {
	ReadOnly() bool
}

func isReadOnly(b Backend) bool {
	ro, ok := b.(readOnlyBackend)
	return ok && ro.ReadOnly()
}

// Options configures the default backend chain for a project.
type Options struct {
	ProjectID string
	KeysDir   string

	// Keyring allows new keys to be stored in the OS keyring. Existing
	// keyring keys are read either way.
	Keyring bool

	// Check, if set, rejects keys that do not belong to the store.
	Check KeyCheck

	Logger logger.Logger
}

// Manager hands out a single stable key for one project.
type Manager struct {
	backends []Backend
	lockPath string
	log      logger.Logger
	check    KeyCheck

	mu      sync.Mutex
	enclave *memguard.Enclave
}

// New returns a Manager that tries backends in order. lockPath names the
// file used to serialize key creation across processes.
func New(lockPath string, log logger.Logger, backends ...Backend) *Manager {
	return &Manager{
		backends: backends,
		lockPath: lockPath,
		log:      log,
	}
}

// WithKeyCheck makes the Manager skip loaded keys that fail check and
// refuse to create a key for a store that already has one.
func (m *Manager) WithKeyCheck(check KeyCheck) *Manager {
	m.check = check
	return m
}

// ForProject builds the standard env, keyring, file chain for a project.
// With Keyring disabled the keyring is still consulted for a key stored
// there earlier, so toggling the setting never orphans a project.
func ForProject(opts Options) *Manager {
	keyringBackend := NewKeyringBackend(opts.ProjectID)
	if !opts.Keyring {
		keyringBackend = NewReadOnlyKeyringBackend(opts.ProjectID)
	}

	lockPath := filepath.Join(opts.KeysDir, opts.ProjectID+".lock")
	return New(lockPath, opts.Logger,
		EnvBackend{},
		keyringBackend,
		NewFileBackend(opts.KeysDir, opts.ProjectID),
	).WithKeyCheck(opts.Check)
}

// Key returns the project key, creating and persisting one on first use.
// The same enclave is returned for the lifetime of the Manager.
func (m *Manager) Key() (*memguard.Enclave, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.enclave != nil {
		return m.enclave, nil
	}

	key, failures := m.load()
	if key == nil {
		var err error
		key, err = m.create()
		if err != nil {
			return nil, err
		}
	} else if len(failures) > 0 {
		m.log.Debugf("Key found after %d backend failure(s)", len(failures))
	}

	// NewEnclave wipes key.
	m.enclave = memguard.NewEnclave(key)
	return m.enclave, nil
}

// load asks each backend in order and returns the first key that is valid
// and passes the key check. Failures other than ErrKeyNotFound are
// returned so create can tell a missing key from an unreadable one.
func (m *Manager) load() ([]byte, []error) {
	var failures []error
	for _, b := range m.backends {
		key, err := m.loadFrom(b)
		if err == nil {
			m.log.Debugf("Loaded key from %s backend", b.Name())
			return key, failures
		}
		if errors.Is(err, kerrors.ErrKeyNotFound) {
			continue
		}

		switch {
		case errors.Is(err, kerrors.ErrKeyMismatch):
			m.log.Warnf("Key in %s backend does not match the secret store, skipping", b.Name())
		case isReadOnly(b) && errors.Is(err, kerrors.ErrBackendUnavailable):
			m.log.Debugf("Key backend %s unavailable, skipping", b.Name())
		default:
			m.log.Warnf("Key backend %s failed to load, skipping", b.Name())
		}
		failures = append(failures, fmt.Errorf("%s: %w", b.Name(), err))
	}
	return nil, failures
}

// loadFrom loads one backend's key and validates it.
func (m *Manager) loadFrom(b Backend) ([]byte, error) {
	key, err := b.Load()
	if err != nil {
		return nil, err
	}
	if len(key) != KeySize {
		memguard.WipeBytes(key)
		return nil, fmt.Errorf("%w: got %d bytes", kerrors.ErrInvalidKeyLength, len(key))
	}
	if m.check != nil {
		if err := m.check(key); err != nil {
			memguard.WipeBytes(key)
			return nil, err
		}
	}
	return key, nil
}

func (m *Manager) create() ([]byte, error) {
	unlock := m.lockCreation()
	defer unlock()

	// Another creator may have won while we waited for the lock.
	key, failures := m.load()
	if key != nil {
		return key, nil
	}

	key = make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("%w: failed to generate key: %w", kerrors.ErrKeyAcquisition, err)
	}

	// A store that already has a key check was sealed with a key some
	// backend failed to return. A new key could never open it.
	if m.check != nil {
		if err := m.check(key); err != nil {
			memguard.WipeBytes(key)
			failures = append(failures, err)
			return nil, fmt.Errorf("%w: the store's key could not be loaded: %w", kerrors.ErrKeyAcquisition, errors.Join(failures...))
		}
	}

	if len(failures) > 0 {
		m.log.Warnf("Creating a new key although %d key backend(s) could not be read", len(failures))
	}

	for _, b := range m.backends {
		err := b.Store(key)
		if err == nil {
			m.log.Infof("Stored new key in %s backend", b.Name())
			return key, nil
		}

		if errors.Is(err, kerrors.ErrKeyExists) {
			existing, loadErr := m.loadFrom(b)
			if loadErr == nil {
				memguard.WipeBytes(key)
				return existing, nil
			}
			err = loadErr
		}

		if !errors.Is(err, errReadOnly) {
			m.log.Warnf("Key backend %s could not store the key, falling back", b.Name())
		}
		failures = append(failures, fmt.Errorf("%s: %w", b.Name(), err))
	}

	memguard.WipeBytes(key)
	return nil, fmt.Errorf("%w: %w", kerrors.ErrKeyAcquisition, errors.Join(failures...))
}

var (
	creationLocksMu sync.Mutex
	creationLocks   = map[string]*sync.Mutex{}
)

// lockCreation serializes key creation for one lock path, within this
// process and across processes. A lock file that cannot be created only
// loses the cross-process half.
func (m *Manager) lockCreation() func() {
	creationLocksMu.Lock()
	mu, ok := creationLocks[m.lockPath]
	if !ok {
		mu = &sync.Mutex{}
		creationLocks[m.lockPath] = mu
	}
	creationLocksMu.Unlock()

	mu.Lock()

	if m.lockPath == "" {
		return mu.Unlock
	}

	if err := os.MkdirAll(filepath.Dir(m.lockPath), 0700); err != nil {
		m.log.Warnf("Could not create key lock directory: %v", err)
		return mu.Unlock
	}

	fileLock := flock.New(m.lockPath)
	if err := fileLock.Lock(); err != nil {
		m.log.Warnf("Could not acquire key lock: %v", err)
		return mu.Unlock
	}

	return func() {
		if err := fileLock.Unlock(); err != nil {
			m.log.Debugf("Failed to release key lock: %v", err)
		}
		mu.Unlock()
	}
}
