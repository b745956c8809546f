// Package totp turns otpauth:// URIs stored in secrets into one-time codes.
package totp

import (
	"fmt"
	"time"

	"github.com/pquerna/otp"
	ptotp "github.com/pquerna/otp/totp"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
)

// Code is a one-time code and how long it stays valid.
type Code struct {
	Code      string
	Remaining time.Duration
}

// Generate returns the code for url at now.
func Generate(url string, now time.Time) (*Code, error) {
	key, err := otp.NewKeyFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrInvalidTOTP, err)
	}
	if key.Type() != "totp" {
		return nil, fmt.Errorf("%w: unsupported type %q", kerrors.ErrInvalidTOTP, key.Type())
	}
	if key.Secret() == "" {
		return nil, fmt.Errorf("%w: missing secret", kerrors.ErrInvalidTOTP)
	}

	period := key.Period()
	code, err := ptotp.GenerateCodeCustom(key.Secret(), now, ptotp.ValidateOpts{
		Period:    uint(period),
		Digits:    key.Digits(),
		Algorithm: key.Algorithm(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrInvalidTOTP, err)
	}

	elapsed := uint64(now.Unix()) % period
	return &Code{
		Code:      code,
		Remaining: time.Duration(period-elapsed) * time.Second,
	}, nil
}
