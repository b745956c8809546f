package workflows

import (
	"context"
	"fmt"
	"sort"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	"github.com/PolarWolf314/lockbox/internal/history"
	logger "github.com/PolarWolf314/lockbox/internal/logging"
)

// MutationResult contains the outcome of an operation that changed the store.
type MutationResult struct {
	// Name is the secret's name after the operation.
	Name string

	// PreviousName is set when the secret was renamed.
	PreviousName string

	// Commit is the history entry recording the change.
	Commit *history.Commit
}

// AddOptions configures the add workflow.
type AddOptions struct {
	Name   string
	Fields map[string]string
	Logger logger.Logger
}

// Add creates a new secret.
//
// Returns ErrRecipientNotConfigured if no recipient is configured.
// Returns ErrNameCollision if a secret with that name exists.
// Returns ErrInvalidName if the name cannot be stored.
// Returns a *StepError naming the failed step for write and commit failures.
func Add(ctx context.Context, opts AddOptions) (*MutationResult, error) {
	sess, err := openSession(ctx, opts.Logger, true)
	if err != nil {
		return nil, err
	}

	commit, err := sess.secrets.Update(nil, opts.Name, opts.Fields)
	if err != nil {
		return nil, err
	}
	return &MutationResult{Name: opts.Name, Commit: commit}, nil
}

// EditOptions configures the edit workflow.
type EditOptions struct {
	Name string

	// NewName renames the secret when set and different from Name.
	NewName string

	// Replace, when non-nil, becomes the full field set before Set and
	// Unset are applied.
	Replace map[string]string

	// Set adds or overwrites fields.
	Set map[string]string

	// Unset removes fields.
	Unset []string

	Logger logger.Logger
}

// EditResult contains the outcome of an edit operation.
type EditResult struct {
	MutationResult

	// Changed lists the keys that were added or modified, sorted.
	Changed []string

	// Removed lists the keys that were removed, sorted.
	Removed []string
}

// Edit rewrites a secret with changed fields, optionally under a new name.
// The resulting field set replaces the stored one entirely.
//
// Returns ErrNotFound if the secret does not exist.
// Returns ErrNameCollision if NewName is taken.
// Returns ErrFieldNotFound if Unset names a field the secret lacks.
func Edit(ctx context.Context, opts EditOptions) (*EditResult, error) {
	sess, err := openSession(ctx, opts.Logger, true)
	if err != nil {
		return nil, err
	}

	record, err := sess.secrets.Load(opts.Name)
	if err != nil {
		return nil, err
	}

	source := record.Fields
	if opts.Replace != nil {
		source = opts.Replace
	}
	fields := make(map[string]string, len(source)+len(opts.Set))
	for k, v := range source {
		fields[k] = v
	}
	for k, v := range opts.Set {
		fields[k] = v
	}
	for _, k := range opts.Unset {
		if _, ok := fields[k]; !ok {
			return nil, fieldNotFound(k, opts.Name)
		}
		delete(fields, k)
	}

	target := opts.Name
	if opts.NewName != "" {
		target = opts.NewName
	}

	previous := opts.Name
	commit, err := sess.secrets.Update(&previous, target, fields)
	if err != nil {
		return nil, err
	}

	result := &EditResult{
		MutationResult: MutationResult{Name: target, Commit: commit},
	}
	if target != opts.Name {
		result.PreviousName = opts.Name
	}
	result.Changed, result.Removed = diffFields(record.Fields, fields)
	return result, nil
}

// RenameOptions configures the rename workflow.
type RenameOptions struct {
	From   string
	To     string
	Logger logger.Logger
}

// Rename moves a secret to a new name, keeping its fields.
//
// Returns ErrNotFound if From does not exist.
// Returns ErrNameCollision if To is taken.
// Returns a *StepError with StepRemove if the new file was written but the
// old one could not be removed.
func Rename(ctx context.Context, opts RenameOptions) (*MutationResult, error) {
	sess, err := openSession(ctx, opts.Logger, true)
	if err != nil {
		return nil, err
	}

	record, err := sess.secrets.Load(opts.From)
	if err != nil {
		return nil, err
	}

	from := opts.From
	commit, err := sess.secrets.Update(&from, opts.To, record.Fields)
	if err != nil {
		return nil, err
	}
	return &MutationResult{Name: opts.To, PreviousName: opts.From, Commit: commit}, nil
}

// RemoveOptions configures the remove workflow.
type RemoveOptions struct {
	Name   string
	Logger logger.Logger
}

// Remove deletes a secret.
//
// Returns ErrNotFound if the secret does not exist.
func Remove(ctx context.Context, opts RemoveOptions) (*MutationResult, error) {
	sess, err := openSession(ctx, opts.Logger, false)
	if err != nil {
		return nil, err
	}

	commit, err := sess.secrets.Delete(opts.Name)
	if err != nil {
		return nil, err
	}
	return &MutationResult{Name: opts.Name, Commit: commit}, nil
}

// diffFields reports which keys changed between two field sets.
func diffFields(before, after map[string]string) (changed, removed []string) {
	for k, v := range after {
		if old, ok := before[k]; !ok || old != v {
			changed = append(changed, k)
		}
	}
	for k := range before {
		if _, ok := after[k]; !ok {
			removed = append(removed, k)
		}
	}
	sort.Strings(changed)
	sort.Strings(removed)
	return changed, removed
}

func fieldNotFound(key, name string) error {
	return fmt.Errorf("%w: %q in %s", kerrors.ErrFieldNotFound, key, name)
}
