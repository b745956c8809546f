package configs

import (
	"log"
	"os"
	"path/filepath"
	"strings"
)

type UserSettings struct {
	UserConfigsPath string
	UserDataPath    string
	HomeDir         string
}

var UserLockboxSettings *UserSettings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")

	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	UserLockboxSettings = &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "lockbox"),
		UserDataPath:    filepath.Join(dataDir, "lockbox"),
		HomeDir:         homeDir,
	}
}

// ConfigFile returns the path of config.toml.
func (s *UserSettings) ConfigFile() string {
	return filepath.Join(s.UserConfigsPath, "config.toml")
}

// EnvFile returns the path of the optional environment file.
func (s *UserSettings) EnvFile() string {
	return filepath.Join(s.UserConfigsPath, "lockbox.env")
}

// DefaultStorePath returns where the store lives when none is configured.
func (s *UserSettings) DefaultStorePath() string {
	return filepath.Join(s.UserDataPath, "store")
}

func (s *UserSettings) DefaultPublicKeyring() string {
	return filepath.Join(s.HomeDir, ".gnupg", "pubring.gpg")
}

func (s *UserSettings) DefaultSecretKeyring() string {
	return filepath.Join(s.HomeDir, ".gnupg", "secring.gpg")
}

// ExpandHome replaces a leading ~ with the home directory.
func (s *UserSettings) ExpandHome(path string) string {
	if path == "~" {
		return s.HomeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(s.HomeDir, path[2:])
	}
	return path
}
