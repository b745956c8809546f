package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/PolarWolf314/lockbox/internal/codec"
	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	"github.com/PolarWolf314/lockbox/internal/history"
	logger "github.com/PolarWolf314/lockbox/internal/logging"
)

// Backend encrypts secret content for a recipient and decrypts it again.
type Backend interface {
	Encrypt(plaintext []byte, recipient string) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

// Secrets is the set of operations shared by Store and Cached.
type Secrets interface {
	ListNames() ([]string, error)
	Load(name string) (*Record, error)
	Update(previous *string, name string, fields map[string]string) (*history.Commit, error)
	Delete(name string) (*history.Commit, error)
	History(limit int) ([]history.Commit, error)
	Root() string
	Recipient() string
}

// Store owns a secrets directory and its repository.
type Store struct {
	root      string
	recipient string
	backend   Backend
	history   *history.Repository
	log       logger.Logger
}

// Open opens the store at root. The directory must exist; its repository
// is initialized if missing. The recipient is not checked until the first
// write.
func Open(root, recipient string, backend Backend, log logger.Logger) (*Store, error) {
	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrStoreNotInitialized, root)
	}
	if err != nil {
		return nil, ioError(err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", kerrors.ErrIO, root)
	}

	repo, err := history.Open(root)
	if err != nil {
		return nil, err
	}

	log.Debugf("Opened store at %s for recipient %s", root, recipient)
	return &Store{
		root:      root,
		recipient: recipient,
		backend:   backend,
		history:   repo,
		log:       log,
	}, nil
}

// Init creates the store directory and repository and ignores temporary
// files left by interrupted writes.
func Init(root string) error {
	if err := os.MkdirAll(root, 0700); err != nil {
		return ioError(err)
	}

	ignore := filepath.Join(root, ".gitignore")
	if ok, err := exists(ignore); err != nil {
		return err
	} else if !ok {
		if err := os.WriteFile(ignore, []byte("*.tmp\n"), 0600); err != nil {
			return ioError(err)
		}
	}

	_, err := history.Open(root)
	return err
}

func (s *Store) Root() string      { return s.root }
func (s *Store) Recipient() string { return s.recipient }

// ListNames returns the names of all secrets, sorted ascending.
func (s *Store) ListNames() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, ioError(err)
	}

	names := []string{}
	for _, entry := range entries {
		name := nameFromFile(entry.Name())
		if name == "" {
			continue
		}
		if !s.isRegular(entry) {
			continue
		}
		names = append(names, name)
	}

	sort.Strings(names)
	return names, nil
}

func (s *Store) isRegular(entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(s.root, entry.Name()))
	return err == nil && info.Mode().IsRegular()
}

// Load decrypts and parses the named secret.
func (s *Store) Load(name string) (*Record, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	ciphertext, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", kerrors.ErrNotFound, name)
	}
	if err != nil {
		return nil, ioError(err)
	}

	plaintext, err := s.backend.Decrypt(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", name, err)
	}

	fields, err := codec.DecodeBytes(plaintext)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", name, err)
	}

	s.log.Debugf("Loaded secret %s with %d fields", name, len(fields))
	return &Record{Name: name, Fields: fields}, nil
}

// Save creates a new secret. It is Update with no previous name.
func (s *Store) Save(name string, fields map[string]string) (*history.Commit, error) {
	return s.Update(nil, name, fields)
}

// Rename moves a secret to a new name, keeping its fields.
func (s *Store) Rename(from, to string) (*history.Commit, error) {
	record, err := s.Load(from)
	if err != nil {
		return nil, err
	}
	return s.Update(&from, to, record.Fields)
}

// Update creates, renames or rewrites a secret, replacing all its fields.
//
// A nil previous creates name. A previous equal to name rewrites it in
// place. Any other previous renames it to name. Create and rename fail
// with ErrNameCollision if name already exists, before anything is written.
func (s *Store) Update(previous *string, name string, fields map[string]string) (*history.Commit, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if previous != nil {
		if err := ValidateName(*previous); err != nil {
			return nil, err
		}
	}

	op := classify(previous, name)
	target := s.path(name)

	if op.isCreating || op.isRenaming {
		taken, err := exists(target)
		if err != nil {
			return nil, stepError(kerrors.StepWrite, name, err)
		}
		if taken {
			return nil, fmt.Errorf("%w: %q", kerrors.ErrNameCollision, name)
		}
	}
	if previous != nil {
		found, err := exists(s.path(*previous))
		if err != nil {
			return nil, stepError(kerrors.StepWrite, name, err)
		}
		if !found {
			return nil, fmt.Errorf("%w: %q", kerrors.ErrNotFound, *previous)
		}
	}

	if err := s.write(target, fields); err != nil {
		return nil, stepError(kerrors.StepWrite, name, err)
	}
	s.log.Debugf("Wrote %s", target)

	if op.isRenaming {
		if err := os.Remove(s.path(*previous)); err != nil {
			s.log.Errorf("Renamed %s to %s but could not remove the old file; both now exist", *previous, name)
			return nil, stepError(kerrors.StepRemove, *previous, ioError(err))
		}
	}

	return s.commit(name, op.message(previous, name))
}

// Delete removes the named secret.
func (s *Store) Delete(name string) (*history.Commit, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	path := s.path(name)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.Mode().IsRegular()) {
		return nil, fmt.Errorf("%w: %q", kerrors.ErrNotFound, name)
	}
	if err != nil {
		return nil, stepError(kerrors.StepRemove, name, ioError(err))
	}

	if err := os.Remove(path); err != nil {
		return nil, stepError(kerrors.StepRemove, name, ioError(err))
	}

	return s.commit(name, fmt.Sprintf("Delete secret: %s", name))
}

// History returns up to limit commits, newest first. A limit of 0 returns all.
func (s *Store) History(limit int) ([]history.Commit, error) {
	return s.history.Log(limit)
}

func (s *Store) write(path string, fields map[string]string) error {
	text, err := codec.Encode(fields)
	if err != nil {
		return err
	}
	ciphertext, err := s.backend.Encrypt([]byte(text), s.recipient)
	if err != nil {
		return err
	}
	return writeAtomic(path, ciphertext)
}

func (s *Store) commit(name, message string) (*history.Commit, error) {
	commit, err := s.history.Commit(message)
	if err != nil {
		s.log.Errorf("Files for %s were changed but not committed: %v", name, err)
		return nil, stepError(kerrors.StepCommit, name, err)
	}
	s.log.Infof("Committed %s: %s", history.ShortHash(commit.Hash), message)
	return commit, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.root, name+Ext)
}

func stepError(step kerrors.Step, name string, err error) error {
	return &kerrors.StepError{Step: step, Name: name, Err: err}
}

// operation is the kind of change an Update makes.
type operation struct {
	isCreating bool
	isRenaming bool
}

func classify(previous *string, name string) operation {
	return operation{
		isCreating: previous == nil,
		isRenaming: previous != nil && *previous != name,
	}
}

func (op operation) message(previous *string, name string) string {
	switch {
	case op.isCreating:
		return fmt.Sprintf("Create secret: %s", name)
	case op.isRenaming:
		return fmt.Sprintf("Rename secret from %s to %s", *previous, name)
	default:
		return fmt.Sprintf("Update secret: %s", name)
	}
}
