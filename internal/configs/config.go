package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
)

type Config struct {
	Store   StoreConfig   `toml:"store"`
	Keyring KeyringConfig `toml:"keyring"`
}

type StoreConfig struct {
	Path      string `toml:"path,omitempty"`
	Recipient string `toml:"recipient,omitempty"`
}

type KeyringConfig struct {
	Public string `toml:"public,omitempty"`
	Secret string `toml:"secret,omitempty"`
}

// Environment holds the overrides read from the environment.
type Environment struct {
	StoreDir      string `env:"LOCKBOX_STORE_DIR"`
	Recipient     string `env:"LOCKBOX_RECIPIENT"`
	PublicKeyring string `env:"LOCKBOX_PUBLIC_KEYRING"`
	SecretKeyring string `env:"LOCKBOX_SECRET_KEYRING"`
	Passphrase    string `env:"LOCKBOX_PASSPHRASE"`
}

// Settings is the effective configuration after applying the environment
// and defaults.
type Settings struct {
	StorePath     string
	Recipient     string
	PublicKeyring string
	SecretKeyring string
	Passphrase    string
}

// keys maps "section.name" to accessors on Config.
var keys = map[string]func(*Config) *string{
	"store.path":      func(c *Config) *string { return &c.Store.Path },
	"store.recipient": func(c *Config) *string { return &c.Store.Recipient },
	"keyring.public":  func(c *Config) *string { return &c.Keyring.Public },
	"keyring.secret":  func(c *Config) *string { return &c.Keyring.Secret },
}

// Keys returns the settable configuration keys, sorted.
func Keys() []string {
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Get returns the value stored under key.
func (c *Config) Get(key string) (string, error) {
	field, ok := keys[strings.ToLower(key)]
	if !ok {
		return "", fmt.Errorf("%w: %s", kerrors.ErrUnknownConfigKey, key)
	}
	return *field(c), nil
}

// Set stores value under key. An empty value clears the key.
func (c *Config) Set(key, value string) error {
	field, ok := keys[strings.ToLower(key)]
	if !ok {
		return fmt.Errorf("%w: %s", kerrors.ErrUnknownConfigKey, key)
	}
	*field(c) = strings.TrimSpace(value)
	return nil
}

// LoadConfig loads the user configuration from the config file. A missing
// file yields an empty configuration.
func LoadConfig() (*Config, error) {
	config := &Config{}
	configPath := UserLockboxSettings.ConfigFile()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return config, nil
}

// SaveConfig saves the user configuration to the config file.
func SaveConfig(config *Config) error {
	if err := SaveTOML(UserLockboxSettings.ConfigFile(), config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// LoadEnvironment reads overrides from the environment file and the
// process environment. Process variables win.
func LoadEnvironment() (*Environment, error) {
	vars, err := godotenv.Read(UserLockboxSettings.EnvFile())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", UserLockboxSettings.EnvFile(), err)
	}
	if vars == nil {
		vars = map[string]string{}
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}

	environment := &Environment{}
	if err := env.Parse(environment, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return environment, nil
}

// Resolve merges the config file, environment and defaults.
func Resolve() (*Settings, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	environment, err := LoadEnvironment()
	if err != nil {
		return nil, err
	}
	return resolve(config, environment), nil
}

func resolve(config *Config, environment *Environment) *Settings {
	s := UserLockboxSettings
	return &Settings{
		StorePath:     s.ExpandHome(firstNonEmpty(environment.StoreDir, config.Store.Path, s.DefaultStorePath())),
		Recipient:     firstNonEmpty(environment.Recipient, config.Store.Recipient),
		PublicKeyring: s.ExpandHome(firstNonEmpty(environment.PublicKeyring, config.Keyring.Public, s.DefaultPublicKeyring())),
		SecretKeyring: s.ExpandHome(firstNonEmpty(environment.SecretKeyring, config.Keyring.Secret, s.DefaultSecretKeyring())),
		Passphrase:    environment.Passphrase,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
