package store

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	logger "github.com/PolarWolf314/lockbox/internal/logging"
)

const testRecipient = "alice@example.com"

// fakeBackend "encrypts" by prefixing the recipient, so tests can inspect
// files without keys.
type fakeBackend struct {
	failEncrypt bool
	encrypted   int
}

func (b *fakeBackend) Encrypt(plaintext []byte, recipient string) ([]byte, error) {
	if b.failEncrypt {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrRecipientNotFound, recipient)
	}
	b.encrypted++
	return append([]byte("fake:"+recipient+":"), plaintext...), nil
}

func (b *fakeBackend) Decrypt(ciphertext []byte) ([]byte, error) {
	prefix := []byte("fake:" + testRecipient + ":")
	if !bytes.HasPrefix(ciphertext, prefix) {
		return nil, errors.New("not a fake message")
	}
	return bytes.TrimPrefix(ciphertext, prefix), nil
}

func newTestStore(t *testing.T) (*Store, *fakeBackend) {
	t.Helper()
	root := t.TempDir()
	if err := Init(root); err != nil {
		t.Fatalf("Failed to init store: %v", err)
	}
	backend := &fakeBackend{}
	s, err := Open(root, testRecipient, backend, logger.Logger{})
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	return s, backend
}

func mustSave(t *testing.T, s Secrets, name string, fields map[string]string) {
	t.Helper()
	if _, err := s.Update(nil, name, fields); err != nil {
		t.Fatalf("Failed to save %s: %v", name, err)
	}
}

func commitCount(t *testing.T, s Secrets) int {
	t.Helper()
	commits, err := s.History(0)
	if err != nil {
		t.Fatalf("Failed to read history: %v", err)
	}
	return len(commits)
}

func ptr(s string) *string {
	return &s
}
