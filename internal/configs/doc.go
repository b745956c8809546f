// Package configs manages user configuration for Lockbox.
//
// Configuration is stored in TOML format at:
//
//	$XDG_CONFIG_HOME/lockbox/config.toml
//
// with two sections:
//
//	[store]
//	path = "~/.local/share/lockbox/store"
//	recipient = "alice@example.com"
//
//	[keyring]
//	public = "~/.gnupg/pubring.gpg"
//	secret = "~/.gnupg/secring.gpg"
//
// # Environment
//
// Every setting can be overridden by an environment variable. Variables may
// also be placed in $XDG_CONFIG_HOME/lockbox/lockbox.env, one KEY=value per
// line; real environment variables take precedence over the file.
//
//   - LOCKBOX_STORE_DIR
//   - LOCKBOX_RECIPIENT
//   - LOCKBOX_PUBLIC_KEYRING
//   - LOCKBOX_SECRET_KEYRING
//   - LOCKBOX_PASSPHRASE (environment only, never written to disk)
//
// # Settings
//
// UserLockboxSettings holds the directories configuration is read from. It
// is initialized at startup and may be replaced in tests.
package configs
