package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/lockbox/internal/configs"
	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	"github.com/PolarWolf314/lockbox/internal/gpg"
	logger "github.com/PolarWolf314/lockbox/internal/logging"
	"github.com/PolarWolf314/lockbox/internal/store"
)

// InitOptions configures the init workflow.
type InitOptions struct {
	// Path is where to create the store. If empty, the configured or
	// default path is used.
	Path string

	// Recipient is the key to encrypt to. If empty, the configured
	// recipient is kept.
	Recipient string

	// SkipKeyCheck saves the recipient without looking it up.
	SkipKeyCheck bool

	Logger logger.Logger
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	// StorePath is the absolute path of the new store.
	StorePath string

	// Recipient is the recipient now configured, if any.
	Recipient string

	// Key describes the recipient key, when it was looked up.
	Key *gpg.KeyInfo

	// ConfigUpdated is true when config.toml was written.
	ConfigUpdated bool
}

// keyLookup is implemented by backends that can resolve a recipient.
type keyLookup interface {
	Lookup(recipient string) (*gpg.KeyInfo, error)
}

// Init creates a new store and records its location and recipient in the
// user configuration.
//
// Returns ErrStoreAlreadyInitialized if the directory already holds a
// repository.
// Returns ErrRecipientNotFound if the recipient is not in the public keyring.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	settings, err := configs.Resolve()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	config, err := configs.LoadConfig()
	if err != nil {
		return nil, err
	}

	path := settings.StorePath
	if opts.Path != "" {
		path = configs.UserLockboxSettings.ExpandHome(opts.Path)
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving store path: %w", err)
	}

	if _, err := os.Stat(filepath.Join(path, ".git")); err == nil {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrStoreAlreadyInitialized, path)
	}

	result := &InitResult{StorePath: path, Recipient: settings.Recipient}

	if opts.Recipient != "" {
		result.Recipient = opts.Recipient
		if !opts.SkipKeyCheck {
			settings.Recipient = opts.Recipient
			if lookup, ok := newBackend(settings, opts.Logger).(keyLookup); ok {
				key, err := lookup.Lookup(opts.Recipient)
				if err != nil {
					return nil, err
				}
				result.Key = key
				opts.Logger.Infof("Using key %s for %s", key.KeyID, opts.Recipient)
			}
		}
	}

	if err := store.Init(path); err != nil {
		return nil, err
	}
	opts.Logger.Infof("Created store at %s", path)

	if opts.Path != "" || opts.Recipient != "" {
		if opts.Path != "" {
			config.Store.Path = path
		}
		if opts.Recipient != "" {
			config.Store.Recipient = opts.Recipient
		}
		if err := configs.SaveConfig(config); err != nil {
			return nil, err
		}
		result.ConfigUpdated = true
		opts.Logger.Infof("Updated %s", configs.UserLockboxSettings.ConfigFile())
	}

	return result, nil
}
