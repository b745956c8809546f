package configs

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
)

// withSettings points UserLockboxSettings at a temporary tree and clears
// the LOCKBOX_* environment.
func withSettings(t *testing.T) *UserSettings {
	t.Helper()
	root := t.TempDir()
	original := UserLockboxSettings
	UserLockboxSettings = &UserSettings{
		UserConfigsPath: filepath.Join(root, "config", "lockbox"),
		UserDataPath:    filepath.Join(root, "data", "lockbox"),
		HomeDir:         filepath.Join(root, "home"),
	}
	t.Cleanup(func() {
		UserLockboxSettings = original
	})

	for _, name := range []string{
		"LOCKBOX_STORE_DIR", "LOCKBOX_RECIPIENT", "LOCKBOX_PUBLIC_KEYRING",
		"LOCKBOX_SECRET_KEYRING", "LOCKBOX_PASSPHRASE",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	return UserLockboxSettings
}

func TestSaveAndLoadConfig(t *testing.T) {
	withSettings(t)

	config := &Config{
		Store:   StoreConfig{Path: "/srv/secrets", Recipient: "alice@example.com"},
		Keyring: KeyringConfig{Public: "/keys/pub.gpg", Secret: "/keys/sec.gpg"},
	}
	if err := SaveConfig(config); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, config) {
		t.Errorf("Expected %+v, got %+v", config, loaded)
	}

	info, err := os.Stat(UserLockboxSettings.ConfigFile())
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Expected mode 0600, got %o", perm)
	}
}

func TestLoadConfigNonExistent(t *testing.T) {
	withSettings(t)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if *config != (Config{}) {
		t.Errorf("Expected empty config, got %+v", config)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	s := withSettings(t)
	if err := os.MkdirAll(s.UserConfigsPath, 0700); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(s.ConfigFile(), []byte("[store\npath = "), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadConfig(); err == nil {
		t.Error("Expected error for malformed config")
	}
}

func TestConfigGetSet(t *testing.T) {
	config := &Config{}

	for _, key := range Keys() {
		if err := config.Set(key, " value-for-"+key+" "); err != nil {
			t.Fatalf("Set(%s) failed: %v", key, err)
		}
		got, err := config.Get(key)
		if err != nil {
			t.Fatalf("Get(%s) failed: %v", key, err)
		}
		if got != "value-for-"+key {
			t.Errorf("Expected trimmed value for %s, got %q", key, got)
		}
	}

	if config.Store.Recipient != "value-for-store.recipient" {
		t.Errorf("Expected Set to write through to the struct, got %+v", config.Store)
	}

	if err := config.Set("store.nope", "x"); !errors.Is(err, kerrors.ErrUnknownConfigKey) {
		t.Errorf("Expected ErrUnknownConfigKey, got %v", err)
	}
	if _, err := config.Get("nope"); !errors.Is(err, kerrors.ErrUnknownConfigKey) {
		t.Errorf("Expected ErrUnknownConfigKey, got %v", err)
	}
}

func TestKeysSorted(t *testing.T) {
	want := []string{"keyring.public", "keyring.secret", "store.path", "store.recipient"}
	if got := Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestResolveDefaults(t *testing.T) {
	s := withSettings(t)

	settings, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := &Settings{
		StorePath:     filepath.Join(s.UserDataPath, "store"),
		PublicKeyring: filepath.Join(s.HomeDir, ".gnupg", "pubring.gpg"),
		SecretKeyring: filepath.Join(s.HomeDir, ".gnupg", "secring.gpg"),
	}
	if !reflect.DeepEqual(settings, want) {
		t.Errorf("Expected %+v, got %+v", want, settings)
	}
}

func TestResolveConfigFile(t *testing.T) {
	s := withSettings(t)
	if err := SaveConfig(&Config{
		Store:   StoreConfig{Path: "~/vault", Recipient: "alice@example.com"},
		Keyring: KeyringConfig{Public: "/keys/pub.gpg"},
	}); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	settings, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if settings.StorePath != filepath.Join(s.HomeDir, "vault") {
		t.Errorf("Expected ~ to expand, got %q", settings.StorePath)
	}
	if settings.Recipient != "alice@example.com" {
		t.Errorf("Expected recipient from config, got %q", settings.Recipient)
	}
	if settings.PublicKeyring != "/keys/pub.gpg" {
		t.Errorf("Expected public keyring from config, got %q", settings.PublicKeyring)
	}
	if settings.SecretKeyring != s.DefaultSecretKeyring() {
		t.Errorf("Expected default secret keyring, got %q", settings.SecretKeyring)
	}
}

func TestResolveEnvironmentOverrides(t *testing.T) {
	withSettings(t)
	if err := SaveConfig(&Config{Store: StoreConfig{Path: "/from/config", Recipient: "config@example.com"}}); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	t.Setenv("LOCKBOX_STORE_DIR", "/from/env")
	t.Setenv("LOCKBOX_RECIPIENT", "env@example.com")
	t.Setenv("LOCKBOX_PASSPHRASE", "s3cret")

	settings, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if settings.StorePath != "/from/env" {
		t.Errorf("Expected store path from env, got %q", settings.StorePath)
	}
	if settings.Recipient != "env@example.com" {
		t.Errorf("Expected recipient from env, got %q", settings.Recipient)
	}
	if settings.Passphrase != "s3cret" {
		t.Errorf("Expected passphrase from env, got %q", settings.Passphrase)
	}
}

func TestResolveEnvFile(t *testing.T) {
	s := withSettings(t)
	if err := os.MkdirAll(s.UserConfigsPath, 0700); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	content := "LOCKBOX_RECIPIENT=file@example.com\nLOCKBOX_SECRET_KEYRING=/file/sec.gpg\n"
	if err := os.WriteFile(s.EnvFile(), []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	t.Setenv("LOCKBOX_SECRET_KEYRING", "/env/sec.gpg")

	settings, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if settings.Recipient != "file@example.com" {
		t.Errorf("Expected recipient from env file, got %q", settings.Recipient)
	}
	if settings.SecretKeyring != "/env/sec.gpg" {
		t.Errorf("Expected process environment to win, got %q", settings.SecretKeyring)
	}
}

func TestExpandHome(t *testing.T) {
	s := &UserSettings{HomeDir: "/home/alice"}
	tests := map[string]string{
		"~":           "/home/alice",
		"~/store":     filepath.Join("/home/alice", "store"),
		"/abs/path":   "/abs/path",
		"relative":    "relative",
		"~other/path": "~other/path",
	}
	for in, want := range tests {
		if got := s.ExpandHome(in); got != want {
			t.Errorf("ExpandHome(%q) = %q, expected %q", in, got, want)
		}
	}
}
