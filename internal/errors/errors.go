package errors

import "errors"

// Store errors indicate issues with the encrypted store file itself.
var (
	// ErrStoreNotInitialized indicates an operation ran before the store was created.
	ErrStoreNotInitialized = errors.New("secret store has not been initialized")

	// ErrCorruptStore indicates the store or one of its entries failed to decode or authenticate.
	ErrCorruptStore = errors.New("secret store appears corrupted")

	// ErrIncompatibleStore indicates the store was written in a format this build cannot read.
	ErrIncompatibleStore = errors.New("secret store format is not supported")

	// ErrStoreIO indicates a filesystem failure while reading or replacing the store.
	ErrStoreIO = errors.New("secret store I/O failure")
)

// Key errors indicate failures while obtaining the project encryption key.
var (
	// ErrKeyAcquisition indicates no backend could produce a usable key.
	ErrKeyAcquisition = errors.New("unable to acquire encryption key")

	// ErrKeyNotFound indicates a backend holds no key for the project.
	ErrKeyNotFound = errors.New("encryption key not found")

	// ErrKeyExists indicates another creator stored a key first.
	ErrKeyExists = errors.New("encryption key already exists")

	// ErrBackendUnavailable indicates the key facility cannot be used on this host.
	ErrBackendUnavailable = errors.New("key backend unavailable")

	// ErrInvalidKeyLength indicates the key has an unexpected length.
	ErrInvalidKeyLength = errors.New("invalid encryption key length")

	// ErrKeyMismatch indicates a key that does not open the store's key check.
	ErrKeyMismatch = errors.New("encryption key does not match the secret store")
)

// Input errors indicate rejected secret names or values.
var (
	// ErrInvalidSecretName indicates the name is not a valid environment variable name.
	ErrInvalidSecretName = errors.New("invalid secret name")

	// ErrInvalidSecretValue indicates the value cannot be written as a single env line.
	ErrInvalidSecretValue = errors.New("invalid secret value")

	// ErrSecretNotFound indicates the named secret does not exist.
	ErrSecretNotFound = errors.New("secret not found")
)

// Scan errors indicate results of the leak scanner.
var (
	// ErrSecretsDetected indicates the scanner found likely secrets in project files.
	ErrSecretsDetected = errors.New("potential secrets detected")
)

// Configuration errors indicate a malformed user configuration.
var (
	// ErrInvalidConfig indicates config.toml holds values devforge cannot use.
	ErrInvalidConfig = errors.New("configuration is invalid")
)
