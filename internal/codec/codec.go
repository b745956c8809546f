package codec

import (
	"bytes"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
)

// Encode serializes fields as a TOML document.
func Encode(fields map[string]string) (string, error) {
	for key, value := range fields {
		if err := validateKey(key); err != nil {
			return "", err
		}
		if !utf8.ValidString(value) {
			return "", fmt.Errorf("%w: value of %q is not valid UTF-8", kerrors.ErrFormat, key)
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(fields); err != nil {
		return "", fmt.Errorf("%w: %w", kerrors.ErrFormat, err)
	}
	return buf.String(), nil
}

// Decode parses a TOML document into a flat field map.
// Empty text yields an empty, non-nil map.
func Decode(text string) (map[string]string, error) {
	fields := make(map[string]string)
	if _, err := toml.Decode(text, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrFormat, err)
	}
	return fields, nil
}

// DecodeBytes is Decode for raw plaintext, rejecting input that is not UTF-8.
func DecodeBytes(data []byte) (map[string]string, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: content is not valid UTF-8", kerrors.ErrFormat)
	}
	return Decode(string(data))
}

func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty field name", kerrors.ErrFormat)
	}
	if !utf8.ValidString(key) {
		return fmt.Errorf("%w: field name %q is not valid UTF-8", kerrors.ErrFormat, key)
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: field name %q contains control characters", kerrors.ErrFormat, key)
		}
	}
	return nil
}
