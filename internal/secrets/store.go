package secrets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/awnumar/memguard"
	"github.com/google/uuid"

	"github.com/devforge/devforge/internal/configs"
	kerrors "github.com/devforge/devforge/internal/errors"
	"github.com/devforge/devforge/internal/keystore"
	logger "github.com/devforge/devforge/internal/logging"
)

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// KeySource yields the project key. keystore.Manager is the production
// implementation.
type KeySource interface {
	Key() (*memguard.Enclave, error)
}

// KeySourceFunc builds the KeySource for a project id. check tells a
// source which candidate keys belong to the store.
type KeySourceFunc func(projectID string, check keystore.KeyCheck) KeySource

// Store is a handle on one project's secret store. It is safe for
// concurrent use, and any number of Stores may be open on the same file.
type Store struct {
	projectPath    string
	path           string
	runtimeEnvFile string
	log            logger.Logger
	newKeySource   KeySourceFunc

	keyMu  sync.Mutex
	keysID string
	keys   KeySource
}

type Option func(*Store)

// WithStoreFile overrides the store file name inside the project.
func WithStoreFile(name string) Option {
	return func(s *Store) { s.path = filepath.Join(s.projectPath, name) }
}

// WithRuntimeEnvFile overrides the default Inject output name.
func WithRuntimeEnvFile(name string) Option {
	return func(s *Store) { s.runtimeEnvFile = name }
}

func WithLogger(log logger.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithKeySource replaces the default env, keyring, file backend chain.
func WithKeySource(f KeySourceFunc) Option {
	return func(s *Store) { s.newKeySource = f }
}

// Open returns a Store for the project at projectPath. Nothing is read
// until the first operation.
func Open(projectPath string, opts ...Option) *Store {
	abs, err := filepath.Abs(projectPath)
	if err != nil {
		abs = filepath.Clean(projectPath)
	}

	s := &Store{
		projectPath:    abs,
		path:           filepath.Join(abs, configs.DefaultStoreFile),
		runtimeEnvFile: configs.DefaultRuntimeEnvFile,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.newKeySource == nil {
		log := s.log
		s.newKeySource = func(projectID string, check keystore.KeyCheck) KeySource {
			return keystore.ForProject(keystore.Options{
				ProjectID: projectID,
				KeysDir:   configs.UserDevforgeSettings.UserKeysPath,
				Keyring:   true,
				Check:     check,
				Logger:    log,
			})
		}
	}

	return s
}

// Path returns the store file location.
func (s *Store) Path() string { return s.path }

// ProjectPath returns the project root the store belongs to.
func (s *Store) ProjectPath() string { return s.projectPath }

func (s *Store) lockPath() string { return s.path + ".lock" }

// InitStore creates an empty store if none exists, bound to the project
// key. It reports whether a store was created. An existing store is left
// untouched.
func (s *Store) InitStore() (bool, error) {
	if exists, err := s.initialized(); err != nil || exists {
		return false, err
	}

	// The key is acquired outside the store lock because key sources
	// read the store to check candidate keys.
	sf := newStoreFile(uuid.NewString())
	enclave, err := s.key(sf.ProjectID)
	if err != nil {
		return false, err
	}
	check, err := sealEntry(enclave, keyCheckName, "")
	if err != nil {
		return false, err
	}
	sf.KeyCheck = &check

	unlock, err := s.lockForWrite()
	if err != nil {
		return false, err
	}
	defer unlock()

	if _, err := readStoreFile(s.path); err == nil {
		s.log.Infof("Store was created concurrently at %s", s.path)
		return false, nil
	} else if !errors.Is(err, kerrors.ErrStoreNotInitialized) {
		return false, err
	}

	if err := writeStoreFile(s.path, sf); err != nil {
		return false, err
	}

	s.log.Infof("Created store at %s", s.path)
	return true, nil
}

// initialized reports whether a valid store exists.
func (s *Store) initialized() (bool, error) {
	_, err := s.snapshot()
	if err == nil {
		s.log.Infof("Store already exists at %s", s.path)
		return true, nil
	}
	if errors.Is(err, kerrors.ErrStoreNotInitialized) {
		return false, nil
	}
	return false, err
}

// ProjectID returns the identifier the project key is filed under.
func (s *Store) ProjectID() (string, error) {
	unlock := s.lockForRead()
	defer unlock()

	sf, err := readStoreFile(s.path)
	if err != nil {
		return "", err
	}
	return sf.ProjectID, nil
}

// Set encrypts value and upserts it under name.
func (s *Store) Set(name, value string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ValidateValue(value); err != nil {
		return err
	}

	projectID, err := s.ProjectID()
	if err != nil {
		return err
	}

	enclave, err := s.key(projectID)
	if err != nil {
		return err
	}

	sealed, err := sealEntry(enclave, name, value)
	if err != nil {
		return err
	}

	unlock, err := s.lockForWrite()
	if err != nil {
		return err
	}
	defer unlock()

	sf, err := readStoreFile(s.path)
	if err != nil {
		return err
	}
	if sf.ProjectID != projectID {
		return fmt.Errorf("%w: project id changed while writing %s", kerrors.ErrCorruptStore, name)
	}
	if err := checkEnclave(sf, enclave); err != nil {
		return err
	}
	if sf.KeyCheck == nil {
		check, err := sealEntry(enclave, keyCheckName, "")
		if err != nil {
			return err
		}
		sf.KeyCheck = &check
	}

	sf.Entries[name] = sealed
	if err := writeStoreFile(s.path, sf); err != nil {
		return err
	}

	s.log.Debugf("Stored secret %s", name)
	return nil
}

// Get decrypts the secret stored under name. A missing secret is reported
// with ok == false and a nil error.
func (s *Store) Get(name string) (value string, ok bool, err error) {
	if err := ValidateName(name); err != nil {
		return "", false, err
	}

	sf, err := s.snapshot()
	if err != nil {
		return "", false, err
	}

	e, found := sf.Entries[name]
	if !found {
		return "", false, nil
	}

	enclave, err := s.key(sf.ProjectID)
	if err != nil {
		return "", false, err
	}
	if err := checkEnclave(sf, enclave); err != nil {
		return "", false, err
	}

	value, err = openEntry(enclave, name, e)
	if err != nil {
		return "", false, err
	}

	s.log.Debugf("Read secret %s", name)
	return value, true, nil
}

// List returns the sorted secret names without touching the key.
func (s *Store) List() ([]string, error) {
	sf, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return sortedNames(sf), nil
}

// snapshot reads the store under the shared lock.
func (s *Store) snapshot() (*storeFile, error) {
	unlock := s.lockForRead()
	defer unlock()
	return readStoreFile(s.path)
}

// key returns the project key, building the key source once per project
// id. Callers must not hold the store lock.
func (s *Store) key(projectID string) (*memguard.Enclave, error) {
	s.keyMu.Lock()
	if s.keys == nil || s.keysID != projectID {
		s.keys = s.newKeySource(projectID, s.checkKey)
		s.keysID = projectID
	}
	keys := s.keys
	s.keyMu.Unlock()

	enclave, err := keys.Key()
	if err != nil {
		if errors.Is(err, kerrors.ErrKeyAcquisition) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", kerrors.ErrKeyAcquisition, err)
	}
	return enclave, nil
}

// checkKey is the keystore.KeyCheck for this store.
func (s *Store) checkKey(key []byte) error {
	sf, err := s.snapshot()
	if errors.Is(err, kerrors.ErrStoreNotInitialized) {
		return nil
	}
	if err != nil {
		return err
	}
	return checkKey(sf, key)
}

func sortedNames(sf *storeFile) []string {
	names := make([]string, 0, len(sf.Entries))
	for name := range sf.Entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateName checks that name can be used as an environment variable.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q (use letters, digits and underscores, not starting with a digit)", kerrors.ErrInvalidSecretName, name)
	}
	return nil
}

// ValidateValue checks that value fits on a single NAME=value line.
func ValidateValue(value string) error {
	if !utf8.ValidString(value) {
		return fmt.Errorf("%w: value is not valid UTF-8", kerrors.ErrInvalidSecretValue)
	}
	if strings.ContainsAny(value, "\n\r\x00") {
		return fmt.Errorf("%w: value must not contain newlines or NUL bytes", kerrors.ErrInvalidSecretValue)
	}
	return nil
}

// Exists reports whether the store file is present.
func (s *Store) Exists() (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %w", kerrors.ErrStoreIO, err)
}
