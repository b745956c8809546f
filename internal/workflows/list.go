package workflows

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	logger "github.com/PolarWolf314/lockbox/internal/logging"
)

// ListOptions configures the list workflow.
type ListOptions struct {
	// Pattern filters names with a glob ("bank-*", "{mail,chat}*").
	// Empty matches everything.
	Pattern string

	Logger logger.Logger
}

// ListResult contains the outcome of a list operation.
type ListResult struct {
	// Names are the matching secret names, sorted.
	Names []string

	// Total is the number of secrets before filtering.
	Total int

	StorePath string
}

// List returns the names of stored secrets.
//
// Returns ErrStoreNotInitialized if the store directory does not exist.
// Returns ErrInvalidPattern if the pattern is malformed.
func List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	if opts.Pattern != "" && !doublestar.ValidatePattern(opts.Pattern) {
		return nil, fmt.Errorf("%w: %q", kerrors.ErrInvalidPattern, opts.Pattern)
	}

	sess, err := openSession(ctx, opts.Logger, false)
	if err != nil {
		return nil, err
	}

	names, err := sess.secrets.ListNames()
	if err != nil {
		return nil, err
	}

	result := &ListResult{
		Names:     names,
		Total:     len(names),
		StorePath: sess.secrets.Root(),
	}
	if opts.Pattern == "" {
		return result, nil
	}

	filtered := []string{}
	for _, name := range names {
		ok, err := doublestar.Match(opts.Pattern, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", kerrors.ErrInvalidPattern, err)
		}
		if ok {
			filtered = append(filtered, name)
		}
	}
	opts.Logger.Debugf("Pattern %q matched %d of %d secrets", opts.Pattern, len(filtered), len(names))

	result.Names = filtered
	return result, nil
}
