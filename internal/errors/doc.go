// Package errors provides typed error values for the devforge secrets store.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. Internal
// packages wrap these sentinels together with the underlying cause, so both
// remain visible to errors.Is:
//
//	return fmt.Errorf("%w: writing %s: %w", kerrors.ErrStoreIO, path, err)
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Store errors: lifecycle and integrity of the encrypted store
//     (ErrStoreNotInitialized, ErrCorruptStore, ErrIncompatibleStore, ErrStoreIO)
//   - Key errors: acquiring the project key (ErrKeyAcquisition, ErrKeyNotFound,
//     ErrKeyExists, ErrBackendUnavailable, ErrInvalidKeyLength)
//   - Input errors: rejected secret names and values
//   - Scan errors: results of the leak scanner
//
// # Usage
//
// Handle errors in the CLI layer:
//
//	if errors.Is(err, kerrors.ErrStoreNotInitialized) {
//	    // Tell the user to run `devforge secrets init`.
//	}
//
// ErrKeyAcquisition and ErrCorruptStore are fatal for the operation that
// returned them. Nothing in the store retries ErrStoreIO; the atomic rename
// is what keeps the file consistent.
package errors
