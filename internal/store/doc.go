// Package store keeps named secrets as individually encrypted files in a
// git-versioned directory.
//
// Each secret is stored at <root>/<name>.gpg. Its plaintext is a flat TOML
// table of fields (see package codec), encrypted to a single recipient by a
// Backend. Every mutation commits the whole directory with a message
// describing what happened:
//
//	Create secret: github
//	Rename secret from github to github-work
//	Update secret: github-work
//	Delete secret: github-work
//
// # Consistency
//
// Files are written atomically, so listing and loading never observe a
// partially written secret. The encrypted files are authoritative; the
// history is an audit trail. When a mutation fails after touching the
// filesystem, nothing is rolled back and the error is a *errors.StepError
// naming the failed step:
//
//   - write: encoding, encryption, or writing the new file failed; the
//     store is unchanged.
//   - remove: during a rename the new file was written but the old one
//     could not be removed; both names are listed until reconciled.
//   - commit: the files were changed but the commit failed.
//
// # Concurrency
//
// A Store assumes it is the only writer of its directory. There is no file
// or repository locking.
package store
