// Package keystore acquires the per-project encryption key.
//
// A Manager consults an ordered list of Backends and returns the first key
// any of them holds. When none has one, it generates a key under a creation
// lock and stores it through the first backend that accepts it:
//
//   - EnvBackend reads DEVFORGE_SECRETS_KEY (read-only, for CI)
//   - KeyringBackend uses the OS credential store via go-keyring
//   - FileBackend writes <keys_dir>/<project_id>.key with mode 0600
//
// Once acquired, the key lives in a memguard Enclave and is only opened
// into locked memory for the duration of a single encryption call.
package keystore
