package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
)

// writeAtomic writes data to a temporary file next to path and renames it
// into place, so readers see either the old or the new content.
func writeAtomic(path string, data []byte) (err error) {
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return ioError(err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return ioError(err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return ioError(err)
	}
	if err := f.Close(); err != nil {
		return ioError(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return ioError(err)
	}
	return nil
}

// exists reports whether path exists. Errors other than "not exist" are
// returned as ErrIO.
func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, ioError(err)
}

func ioError(err error) error {
	return fmt.Errorf("%w: %w", kerrors.ErrIO, err)
}
