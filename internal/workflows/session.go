package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/lockbox/internal/configs"
	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	"github.com/PolarWolf314/lockbox/internal/gpg"
	logger "github.com/PolarWolf314/lockbox/internal/logging"
	"github.com/PolarWolf314/lockbox/internal/store"
)

// newBackend builds the encryption backend for the resolved settings.
// Tests replace it to avoid keyring files.
var newBackend = func(settings *configs.Settings, log logger.Logger) store.Backend {
	return gpg.New(settings.PublicKeyring, settings.SecretKeyring, gpg.DefaultPassphrase(settings.Passphrase), log)
}

// session is an opened store together with the settings it came from.
type session struct {
	settings *configs.Settings
	backend  store.Backend
	secrets  store.Secrets
}

// openSession resolves configuration and opens the store. Writers need a
// recipient; readers do not.
func openSession(ctx context.Context, log logger.Logger, writing bool) (*session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	settings, err := configs.Resolve()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	log.Debugf("Store path: %s", settings.StorePath)
	log.Debugf("Public keyring: %s", settings.PublicKeyring)
	log.Debugf("Secret keyring: %s", settings.SecretKeyring)

	if writing && settings.Recipient == "" {
		return nil, kerrors.ErrRecipientNotConfigured
	}

	backend := newBackend(settings, log)
	s, err := store.Open(settings.StorePath, settings.Recipient, backend, log)
	if err != nil {
		return nil, err
	}

	return &session{
		settings: settings,
		backend:  backend,
		secrets:  store.NewCached(s),
	}, nil
}
