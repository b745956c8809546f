package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/PolarWolf314/lockbox/internal/configs"
	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
	"github.com/spf13/cobra"
)

const testRecipient = "alice@example.com"

var (
	testKeyOnce sync.Once
	testKey     *openpgp.Entity
	testKeyErr  error
)

// testEnvironment holds the temporary locations of one test.
type testEnvironment struct {
	StorePath     string
	ConfigDir     string
	PublicKeyring string
	SecretKeyring string
}

// setupTestEnvironment points configuration, keyrings and the store at
// temporary directories and resets command state.
func setupTestEnvironment(t *testing.T) *testEnvironment {
	t.Helper()
	root := t.TempDir()

	originalUserSettings := configs.UserLockboxSettings
	configs.UserLockboxSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(root, "config"),
		UserDataPath:    filepath.Join(root, "data"),
		HomeDir:         filepath.Join(root, "home"),
	}
	t.Cleanup(func() {
		configs.UserLockboxSettings = originalUserSettings
		ResetGlobalState()
		ResetConfigState()
	})
	ResetGlobalState()
	ResetConfigState()

	for _, name := range []string{"LOCKBOX_STORE_DIR", "LOCKBOX_RECIPIENT", "LOCKBOX_PUBLIC_KEYRING", "LOCKBOX_SECRET_KEYRING", "LOCKBOX_PASSPHRASE"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	t.Setenv("NO_COLOR", "1")

	env := &testEnvironment{
		StorePath: filepath.Join(root, "store"),
		ConfigDir: configs.UserLockboxSettings.UserConfigsPath,
	}
	env.PublicKeyring, env.SecretKeyring = writeTestKeyrings(t, root)

	t.Setenv("LOCKBOX_STORE_DIR", env.StorePath)
	t.Setenv("LOCKBOX_RECIPIENT", testRecipient)
	t.Setenv("LOCKBOX_PUBLIC_KEYRING", env.PublicKeyring)
	t.Setenv("LOCKBOX_SECRET_KEYRING", env.SecretKeyring)
	return env
}

// writeTestKeyrings exports an unprotected key pair for testRecipient.
func writeTestKeyrings(t *testing.T, dir string) (string, string) {
	t.Helper()
	testKeyOnce.Do(func() {
		testKey, testKeyErr = openpgp.NewEntity("Alice", "test", testRecipient, &packet.Config{RSABits: 1024})
	})
	if testKeyErr != nil {
		t.Fatalf("Failed to generate test key: %v", testKeyErr)
	}

	var pub, sec bytes.Buffer
	if err := testKey.Serialize(&pub); err != nil {
		t.Fatalf("Failed to serialize public key: %v", err)
	}
	if err := testKey.SerializePrivate(&sec, nil); err != nil {
		t.Fatalf("Failed to serialize private key: %v", err)
	}

	pubPath := filepath.Join(dir, "pubring.gpg")
	secPath := filepath.Join(dir, "secring.gpg")
	if err := os.WriteFile(pubPath, pub.Bytes(), 0600); err != nil {
		t.Fatalf("Failed to write public keyring: %v", err)
	}
	if err := os.WriteFile(secPath, sec.Bytes(), 0600); err != nil {
		t.Fatalf("Failed to write secret keyring: %v", err)
	}
	return pubPath, secPath
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stdoutReader)
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stderrReader)
		outputChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	first := <-outputChan
	second := <-outputChan

	return first + second, err
}

// withStdin runs fn with content piped to os.Stdin.
func withStdin(t *testing.T, content string, fn func() error) error {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stdin")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write stdin file: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open stdin file: %v", err)
	}
	defer f.Close()

	original := os.Stdin
	os.Stdin = f
	defer func() { os.Stdin = original }()
	return fn()
}

// createTestCLI creates a complete CLI instance running args below command.
func createTestCLI(command *cobra.Command, args ...string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lockbox",
		Short: "Lockbox - an OpenPGP password store kept in git.",
	}
	rootCmd.AddCommand(command)
	rootCmd.SetArgs(append([]string{command.Name()}, args...))
	return rootCmd
}

// runSecrets runs "lockbox secrets args..." with fresh command state.
func runSecrets(t *testing.T, args ...string) (string, error) {
	t.Helper()
	ResetGlobalState()
	return captureOutput(func() error {
		return createTestCLI(SecretsCmd, args...).Execute()
	})
}

// runConfig runs "lockbox config args..." with fresh command state.
func runConfig(t *testing.T, args ...string) (string, error) {
	t.Helper()
	ResetConfigState()
	return captureOutput(func() error {
		return createTestCLI(ConfigCmd, args...).Execute()
	})
}

// initializeStore runs secrets init and fails the test on error.
func initializeStore(t *testing.T) {
	t.Helper()
	output, err := runSecrets(t, "init")
	if err != nil {
		t.Fatalf("Failed to initialize store: %v\nOutput: %s", err, output)
	}
}

// mustRunSecrets runs a secrets command that is expected to succeed.
func mustRunSecrets(t *testing.T, args ...string) string {
	t.Helper()
	output, err := runSecrets(t, args...)
	if err != nil {
		t.Fatalf("lockbox secrets %v failed: %v\nOutput: %s", args, err, output)
	}
	return output
}
