// Package workflows provides high-level orchestration for Lockbox commands.
//
// Workflows coordinate configuration, the encryption backend and the secret
// store to implement complete user-facing features. Each workflow handles
// a single command's business logic, independent of CLI concerns like flag
// parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Loading configuration and environment overrides
//   - Opening the store with an OpenPGP backend
//   - Performing the core operation
//
// # Available Workflows
//
//   - Init: Creates the store directory and repository
//   - List: Lists secret names, optionally filtered by a glob
//   - Show: Decrypts a secret and computes its one-time code
//   - Add: Creates a secret
//   - Edit: Changes, removes or renames fields of a secret
//   - Rename: Moves a secret to a new name
//   - Remove: Deletes a secret
//   - Log: Reads the store history as an audit trail
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching. Use errors.Is() to check for specific error conditions:
//
//	result, err := workflows.Add(ctx, opts)
//	if errors.Is(err, kerrors.ErrNameCollision) {
//	    // Show user-friendly collision message
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Store operations are not cancellable once started; the context is checked
// before any work begins.
package workflows
