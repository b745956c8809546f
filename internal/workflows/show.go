package workflows

import (
	"context"
	"fmt"
	"time"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	logger "github.com/PolarWolf314/lockbox/internal/logging"
	"github.com/PolarWolf314/lockbox/internal/store"
	"github.com/PolarWolf314/lockbox/internal/totp"
)

// ShowOptions configures the show workflow.
type ShowOptions struct {
	Name string

	// Field limits the result to a single field.
	Field string

	// Now is the time used for one-time codes. Zero means time.Now().
	Now time.Time

	Logger logger.Logger
}

// ShowResult contains the outcome of a show operation.
type ShowResult struct {
	Name string

	// Fields are ordered with login, username and password first.
	Fields []store.Field

	// TOTP is the current one-time code, if the secret has a totpurl.
	TOTP *totp.Code

	// TOTPError is set when the totpurl could not be used. It does not
	// fail the workflow.
	TOTPError error
}

// Show decrypts a secret.
//
// Returns ErrNotFound if the secret does not exist.
// Returns ErrFieldNotFound if Field is set and not present.
// Returns ErrDecryption or ErrFormat if the file cannot be read.
func Show(ctx context.Context, opts ShowOptions) (*ShowResult, error) {
	sess, err := openSession(ctx, opts.Logger, false)
	if err != nil {
		return nil, err
	}

	record, err := sess.secrets.Load(opts.Name)
	if err != nil {
		return nil, err
	}

	result := &ShowResult{Name: record.Name}

	if opts.Field != "" {
		value, ok := record.Get(opts.Field)
		if !ok {
			return nil, fmt.Errorf("%w: %q in %s", kerrors.ErrFieldNotFound, opts.Field, record.Name)
		}
		result.Fields = []store.Field{{Key: opts.Field, Value: value}}
	} else {
		result.Fields = record.Ordered()
	}

	if url := record.TOTPURL(); url != "" && (opts.Field == "" || opts.Field == store.TOTPField) {
		now := opts.Now
		if now.IsZero() {
			now = time.Now()
		}
		code, err := totp.Generate(url, now)
		if err != nil {
			opts.Logger.Warnf("Could not generate one-time code for %s: %v", record.Name, err)
			result.TOTPError = err
		} else {
			result.TOTP = code
		}
	}

	return result, nil
}
