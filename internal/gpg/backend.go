package gpg

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	logger "github.com/PolarWolf314/lockbox/internal/logging"
	"github.com/PolarWolf314/lockbox/internal/utils"
)

// PassphraseFunc returns the passphrase protecting the private key keyID.
type PassphraseFunc func(keyID string) ([]byte, error)

// DefaultPassphrase returns value when it is set and otherwise prompts on
// the controlling terminal.
func DefaultPassphrase(value string) PassphraseFunc {
	return func(keyID string) ([]byte, error) {
		if value != "" {
			return []byte(value), nil
		}
		return utils.ReadPassphraseFromTTY(fmt.Sprintf("Passphrase for key %s: ", keyID))
	}
}

// Backend encrypts to recipients from a public keyring and decrypts with a
// secret keyring.
type Backend struct {
	PublicKeyring string
	SecretKeyring string

	// Passphrase unlocks protected private keys. If nil, only
	// unprotected keys can decrypt.
	Passphrase PassphraseFunc

	Logger logger.Logger
}

// New returns a Backend reading the given keyring files.
func New(publicKeyring, secretKeyring string, passphrase PassphraseFunc, log logger.Logger) *Backend {
	return &Backend{
		PublicKeyring: publicKeyring,
		SecretKeyring: secretKeyring,
		Passphrase:    passphrase,
		Logger:        log,
	}
}

// Encrypt encrypts plaintext to the key resolved from recipient.
func (b *Backend) Encrypt(plaintext []byte, recipient string) ([]byte, error) {
	entity, err := b.resolve(recipient)
	if err != nil {
		return nil, err
	}

	var ciphertext bytes.Buffer
	w, err := openpgp.Encrypt(&ciphertext, []*openpgp.Entity{entity}, nil, &openpgp.FileHints{IsBinary: true}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrEncryption, err)
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrEncryption, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrEncryption, err)
	}

	return ciphertext.Bytes(), nil
}

// Decrypt decrypts a binary or ASCII-armored OpenPGP message.
func (b *Backend) Decrypt(ciphertext []byte) ([]byte, error) {
	keyring, err := readKeyring(b.SecretKeyring)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrDecryption, err)
	}

	var r io.Reader = bytes.NewReader(ciphertext)
	if isArmored(ciphertext) {
		block, err := armor.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", kerrors.ErrDecryption, err)
		}
		r = block.Body
	}

	md, err := openpgp.ReadMessage(r, keyring, b.prompt(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrDecryption, err)
	}
	if !md.IsEncrypted {
		return nil, fmt.Errorf("%w: message is not encrypted", kerrors.ErrDecryption)
	}

	plaintext, err := io.ReadAll(md.UnverifiedBody)
	if err != nil {
		// Integrity check failures surface while reading the body.
		return nil, fmt.Errorf("%w: %w", kerrors.ErrDecryption, err)
	}
	return plaintext, nil
}

// Lookup resolves recipient without encrypting anything.
func (b *Backend) Lookup(recipient string) (*KeyInfo, error) {
	entity, err := b.resolve(recipient)
	if err != nil {
		return nil, err
	}
	info := describe(entity)
	sort.Strings(info.Identities)
	return &info, nil
}

func (b *Backend) resolve(recipient string) (*openpgp.Entity, error) {
	keyring, err := readKeyring(b.PublicKeyring)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrEncryption, err)
	}

	matches := matchRecipient(keyring, recipient)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %w: %q", kerrors.ErrEncryption, kerrors.ErrRecipientNotFound, recipient)
	}
	if len(matches) > 1 {
		b.Logger.Warnf("Recipient %q matches %d keys, using %016X", recipient, len(matches), matches[0].PrimaryKey.KeyId)
	}
	return matches[0], nil
}

// prompt unlocks candidate keys with a single passphrase attempt.
func (b *Backend) prompt() openpgp.PromptFunction {
	attempted := false
	return func(keys []openpgp.Key, symmetric bool) ([]byte, error) {
		if symmetric || b.Passphrase == nil {
			return nil, errors.New("no passphrase available for encrypted private key")
		}
		if attempted || len(keys) == 0 {
			return nil, errors.New("passphrase does not unlock any private key")
		}
		attempted = true

		passphrase, err := b.Passphrase(fmt.Sprintf("%016X", keys[0].PublicKey.KeyId))
		if err != nil {
			return nil, err
		}

		for _, key := range keys {
			if key.PrivateKey != nil && key.PrivateKey.Encrypted {
				// Keys with a different passphrase stay locked; ReadMessage
				// calls the prompt again and the attempt is refused.
				_ = key.PrivateKey.Decrypt(passphrase)
			}
		}
		return nil, nil
	}
}
