package workflows

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/lockbox/internal/configs"
	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
)

func TestInitCreatesStore(t *testing.T) {
	path := setupWorkflowTest(t)

	result, err := Init(context.Background(), InitOptions{})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if result.StorePath != path {
		t.Errorf("Expected store path %s, got %s", path, result.StorePath)
	}
	if result.ConfigUpdated {
		t.Error("Expected config to be left alone without options")
	}
	for _, name := range []string{".git", ".gitignore"} {
		if _, err := os.Stat(filepath.Join(path, name)); err != nil {
			t.Errorf("Expected %s to exist: %v", name, err)
		}
	}
}

func TestInitTwice(t *testing.T) {
	setupStore(t)

	_, err := Init(context.Background(), InitOptions{})
	if !errors.Is(err, kerrors.ErrStoreAlreadyInitialized) {
		t.Errorf("Expected ErrStoreAlreadyInitialized, got %v", err)
	}
}

func TestInitSavesPathAndRecipient(t *testing.T) {
	setupWorkflowTest(t)
	custom := filepath.Join(t.TempDir(), "custom")

	result, err := Init(context.Background(), InitOptions{Path: custom, Recipient: "bob@example.com"})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !result.ConfigUpdated {
		t.Error("Expected config to be updated")
	}
	if result.Recipient != "bob@example.com" {
		t.Errorf("Expected recipient bob@example.com, got %s", result.Recipient)
	}

	config, err := configs.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Store.Path != custom {
		t.Errorf("Expected saved path %s, got %s", custom, config.Store.Path)
	}
	if config.Store.Recipient != "bob@example.com" {
		t.Errorf("Expected saved recipient, got %s", config.Store.Recipient)
	}
}

func TestInitCancelled(t *testing.T) {
	setupWorkflowTest(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Init(ctx, InitOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
