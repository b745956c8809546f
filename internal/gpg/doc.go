// Package gpg encrypts and decrypts secret content with OpenPGP keys.
//
// Keys come from keyring files exported by an external tool, for example:
//
//	gpg --export me@example.com > pubring.gpg
//	gpg --export-secret-keys me@example.com > secring.gpg
//
// Both binary and ASCII-armored keyrings are accepted. The backend never
// generates keys and never caches key material: each Encrypt or Decrypt call
// reads the keyring file again and unlocks private keys for that call only.
//
// # Recipients
//
// A recipient string is matched against every non-revoked key in the public
// keyring. A key matches when one of its identities has that exact email
// (case-insensitive), when an identity string contains it, or when the key
// ID or fingerprint ends with it (hex). The first match in keyring order is
// used; additional matches are reported through the logger.
package gpg
