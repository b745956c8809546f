package workflows

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/lockbox/internal/configs"
	logger "github.com/PolarWolf314/lockbox/internal/logging"
	"github.com/PolarWolf314/lockbox/internal/store"
)

const testRecipient = "alice@example.com"

// plainBackend stores content with a marker prefix instead of encrypting.
type plainBackend struct{}

func (plainBackend) Encrypt(plaintext []byte, recipient string) ([]byte, error) {
	return append([]byte("plain:"), plaintext...), nil
}

func (plainBackend) Decrypt(ciphertext []byte) ([]byte, error) {
	if !bytes.HasPrefix(ciphertext, []byte("plain:")) {
		return nil, errors.New("not a plain message")
	}
	return bytes.TrimPrefix(ciphertext, []byte("plain:")), nil
}

// setupWorkflowTest isolates configuration in a temporary directory and
// swaps the encryption backend. It returns the store path, which does not
// exist yet.
func setupWorkflowTest(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	originalSettings := configs.UserLockboxSettings
	configs.UserLockboxSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(root, "config"),
		UserDataPath:    filepath.Join(root, "data"),
		HomeDir:         filepath.Join(root, "home"),
	}
	originalBackend := newBackend
	newBackend = func(*configs.Settings, logger.Logger) store.Backend { return plainBackend{} }
	t.Cleanup(func() {
		configs.UserLockboxSettings = originalSettings
		newBackend = originalBackend
	})

	for _, name := range []string{"LOCKBOX_STORE_DIR", "LOCKBOX_RECIPIENT", "LOCKBOX_PUBLIC_KEYRING", "LOCKBOX_SECRET_KEYRING", "LOCKBOX_PASSPHRASE"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}

	storePath := filepath.Join(root, "store")
	t.Setenv("LOCKBOX_STORE_DIR", storePath)
	t.Setenv("LOCKBOX_RECIPIENT", testRecipient)
	return storePath
}

// setupStore is setupWorkflowTest with an initialized store.
func setupStore(t *testing.T) string {
	t.Helper()
	path := setupWorkflowTest(t)
	if _, err := Init(context.Background(), InitOptions{}); err != nil {
		t.Fatalf("Failed to init store: %v", err)
	}
	return path
}

func mustAdd(t *testing.T, name string, fields map[string]string) {
	t.Helper()
	if _, err := Add(context.Background(), AddOptions{Name: name, Fields: fields}); err != nil {
		t.Fatalf("Failed to add %s: %v", name, err)
	}
}
