package store

import (
	"fmt"
	"strings"
	"unicode"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
)

// Ext is the extension of secret files.
const Ext = ".gpg"

// ValidateName checks that name maps to exactly one file directly inside
// the store root.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name is empty", kerrors.ErrInvalidName)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: %q starts with a dot", kerrors.ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", kerrors.ErrInvalidName, name)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: %q contains control characters", kerrors.ErrInvalidName, name)
		}
	}
	return nil
}

// nameFromFile returns the secret name for a directory entry, or "" if the
// entry is not a secret file.
func nameFromFile(fileName string) string {
	if !strings.HasSuffix(fileName, Ext) {
		return ""
	}
	name := strings.TrimSuffix(fileName, Ext)
	if ValidateName(name) != nil {
		return ""
	}
	return name
}
