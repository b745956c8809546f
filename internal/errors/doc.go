// Package errors provides typed error values for the Lockbox application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Store errors: ErrNotFound, ErrNameCollision, ErrInvalidName, ErrIO
//   - Crypto errors: ErrEncryption, ErrRecipientNotFound, ErrDecryption
//   - Codec errors: ErrFormat, ErrInvalidTOTP
//   - History errors: ErrHistory
//   - Configuration errors: ErrStoreNotInitialized, ErrStoreAlreadyInitialized,
//     ErrRecipientNotConfigured, ErrUnknownConfigKey, ErrInvalidDateFormat
//   - Command errors: ErrFieldNotFound, ErrInvalidPattern
//
// # Steps
//
// Mutating store operations touch the filesystem and the version history in
// sequence. A failure in one of those steps is reported as a *StepError so
// the caller can tell whether the write, the removal of a renamed file, or
// the commit failed:
//
//	var stepErr *errors.StepError
//	if errors.As(err, &stepErr) && stepErr.Step == errors.StepCommit {
//	    // The encrypted file was written, the commit was not.
//	}
//
// # Wrapping
//
// Wrap errors with additional context, keeping the category:
//
//	return fmt.Errorf("%w: %w", errors.ErrIO, err)
package errors
