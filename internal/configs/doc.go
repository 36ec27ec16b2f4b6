// Package configs manages user configuration and resolved paths for devforge.
//
// # User Configuration
//
// Configuration is stored in TOML format at <UserConfigDir>/devforge/config.toml:
//
//	[secrets]
//	keyring = true
//	keys_dir = ""
//	store_file = ".secrets.devforge"
//	runtime_env_file = ".env.secrets"
//
// A missing file, or a missing key inside it, falls back to the defaults
// above. keys_dir defaults to $XDG_DATA_HOME/devforge/keys, or
// ~/.local/share/devforge/keys when XDG_DATA_HOME is unset.
//
// # Settings
//
// UserDevforgeSettings holds the user-level directories and is initialized
// at startup. Tests override it directly.
//
// ProjectSettings describes one project: its root directory and the
// absolute paths of the store and runtime env files. ResolveProject walks
// up from a starting directory to the nearest directory holding the store
// file.
package configs
