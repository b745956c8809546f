package cmd

import (
	"context"
	"errors"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	"github.com/PolarWolf314/lockbox/internal/ui"
	"github.com/PolarWolf314/lockbox/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	initPath         string
	initRecipient    string
	initSkipKeyCheck bool
)

func init() {
	initCmd.Flags().StringVar(&initPath, "path", "", "directory to create the store in")
	initCmd.Flags().StringVarP(&initRecipient, "recipient", "r", "", "email, name or key id of the key to encrypt to")
	initCmd.Flags().BoolVar(&initSkipKeyCheck, "skip-key-check", false, "do not look up the recipient in the public keyring")

	SecretsCmd.AddCommand(initCmd)
}

// resetInitCommandState resets the init command's global state for testing.
func resetInitCommandState() {
	initPath = ""
	initRecipient = ""
	initSkipKeyCheck = false
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initializes the secrets store",
	Long: `Creates the store directory and its git repository.

The store is created at the configured path, or at --path. When --path or
--recipient is given, it is saved to the configuration file.

Examples:
  lockbox secrets init
  lockbox secrets init --recipient alice@example.com
  lockbox secrets init --path ~/vault --recipient 0x1234ABCD`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting init command")

	spinner, cleanup := startSpinner("Initializing store...", verbose)
	defer cleanup()

	result, err := workflows.Init(context.Background(), workflows.InitOptions{
		Path:         initPath,
		Recipient:    initRecipient,
		SkipKeyCheck: initSkipKeyCheck,
		Logger:       Logger,
	})
	if err != nil {
		spinner.FinalMSG = formatInitError(err)
		if isSecretUnexpectedError(err) {
			return err
		}
		return nil
	}

	msg := ui.Success.Sprint("✓") + " Store initialized at " + ui.Path.Sprint(result.StorePath) + "\n"
	if result.Key != nil {
		msg += ui.Info.Sprint("→") + " Encrypting to key " + ui.Highlight.Sprint(result.Key.KeyID) + "\n"
	}
	if result.Recipient == "" {
		msg += ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("lockbox config set store.recipient <email or key id>") + " before adding secrets"
	} else {
		msg += ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("lockbox secrets add <name> password=...") + " to add your first secret"
	}
	spinner.FinalMSG = msg
	return nil
}

// formatInitError formats an init error for display to the user.
func formatInitError(err error) string {
	if errors.Is(err, kerrors.ErrStoreAlreadyInitialized) {
		return ui.Error.Sprint("✗") + " The store has already been initialized\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("lockbox secrets list") + " to see its secrets"
	}
	return formatSecretError(err, "")
}
