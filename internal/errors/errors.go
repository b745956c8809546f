package errors

import (
	"errors"
	"fmt"
)

// Store errors indicate problems with secret names or files.
var (
	// ErrNotFound indicates the named secret does not exist.
	ErrNotFound = errors.New("secret not found")

	// ErrNameCollision indicates a create or rename target already exists.
	ErrNameCollision = errors.New("a secret with this name already exists")

	// ErrInvalidName indicates a secret name cannot be mapped to a file.
	ErrInvalidName = errors.New("invalid secret name")

	// ErrIO indicates a filesystem operation failed.
	ErrIO = errors.New("filesystem error")
)

// Cryptographic errors indicate failures in the encryption backend.
var (
	// ErrEncryption indicates the plaintext could not be encrypted.
	ErrEncryption = errors.New("failed to encrypt secret")

	// ErrRecipientNotFound indicates no key in the keyring matches the recipient.
	ErrRecipientNotFound = errors.New("recipient key not found")

	// ErrDecryption indicates the ciphertext could not be decrypted.
	ErrDecryption = errors.New("failed to decrypt secret")
)

// ErrFormat indicates secret content is not a valid field table.
var ErrFormat = errors.New("invalid secret format")

// Command errors indicate invalid arguments to a workflow.
var (
	// ErrFieldNotFound indicates the requested field is not in the secret.
	ErrFieldNotFound = errors.New("field not found")

	// ErrInvalidPattern indicates a malformed name filter.
	ErrInvalidPattern = errors.New("invalid name pattern")
)

// ErrInvalidTOTP indicates a totpurl field is not a usable otpauth URI.
var ErrInvalidTOTP = errors.New("invalid TOTP URL")

// ErrHistory indicates the version history could not be read or advanced.
var ErrHistory = errors.New("version history error")

// Configuration errors indicate missing or unusable settings.
var (
	// ErrStoreNotInitialized indicates the store directory does not exist yet.
	ErrStoreNotInitialized = errors.New("store has not been initialized")

	// ErrStoreAlreadyInitialized indicates the store directory already has a repository.
	ErrStoreAlreadyInitialized = errors.New("store has already been initialized")

	// ErrRecipientNotConfigured indicates no recipient identity is configured.
	ErrRecipientNotConfigured = errors.New("no recipient configured")

	// ErrUnknownConfigKey indicates a configuration key that does not exist.
	ErrUnknownConfigKey = errors.New("unknown configuration key")

	// ErrInvalidDateFormat indicates a date filter could not be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// Step names a phase of a mutating store operation.
type Step string

const (
	StepWrite  Step = "write"
	StepRemove Step = "remove"
	StepCommit Step = "commit"
)

// StepError reports which phase of a mutation failed and for which secret.
type StepError struct {
	Step Step
	Name string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s step failed for secret %q: %v", e.Step, e.Name, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// FailedStep returns the step recorded in err, or "" if err carries none.
func FailedStep(err error) Step {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Step
	}
	return ""
}
