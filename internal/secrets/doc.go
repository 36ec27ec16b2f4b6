// Package secrets implements the encrypted per-project secret store.
//
// # Store File
//
// Secrets live in a single JSON document in the project root
// (.secrets.devforge by default):
//
//	{
//	  "version": 1,
//	  "project_id": "<uuid>",
//	  "cipher": "xchacha20-poly1305",
//	  "created_at": "<RFC3339>",
//	  "entries": {"NAME": {"nonce": "...", "ciphertext": "...", "tag": "..."}}
//	}
//
// Each entry is sealed with XChaCha20-Poly1305 under the project key, using
// a fresh 24-byte random nonce and the entry name as additional data, so a
// payload copied under another name fails to open. Plaintext values are
// never written to the store.
//
// # Concurrency
//
// Every mutation is a read-modify-write of the whole file. The sequence is
// guarded by a mutex shared by all Store values for the same path and by an
// advisory lock on <store>.lock that serializes other processes. The new
// document is written to a temp file in the same directory and renamed over
// the old one, so readers only ever see a complete store.
//
// # Runtime Env
//
// Store.Inject is the only operation that writes plaintext to disk. It
// produces NAME=value lines with mode 0600 for docker compose and CI.
package secrets
