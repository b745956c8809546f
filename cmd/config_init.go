package cmd

import (
	"os"

	"github.com/PolarWolf314/lockbox/internal/configs"
	"github.com/PolarWolf314/lockbox/internal/ui"
	"github.com/spf13/cobra"
)

var (
	configInitStore     string
	configInitRecipient string
	configInitPublic    string
	configInitSecret    string
	configInitForce     bool
)

func init() {
	configInitCmd.Flags().StringVar(&configInitStore, "store", "", "store directory (default: $XDG_DATA_HOME/lockbox/store)")
	configInitCmd.Flags().StringVarP(&configInitRecipient, "recipient", "r", "", "email, name or key id of the key to encrypt to")
	configInitCmd.Flags().StringVar(&configInitPublic, "public-keyring", "", "exported public keyring (default: ~/.gnupg/pubring.gpg)")
	configInitCmd.Flags().StringVar(&configInitSecret, "secret-keyring", "", "exported secret keyring (default: ~/.gnupg/secring.gpg)")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing configuration file")
	ConfigCmd.AddCommand(configInitCmd)
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitStore = ""
	configInitRecipient = ""
	configInitPublic = ""
	configInitSecret = ""
	configInitForce = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configuration file",
	Long: `Writes the configuration file with the store location, recipient and
keyring paths. Settings that are not given keep their defaults.

Examples:
  lockbox config init --recipient alice@example.com
  lockbox config init --store ~/vault --public-keyring ~/keys/pub.asc --secret-keyring ~/keys/sec.asc`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config init command")
		path := configs.UserLockboxSettings.ConfigFile()

		spinner, cleanup := startSpinnerWithFlags("Writing configuration...", configVerbose, configDebug)
		defer cleanup()

		if _, err := os.Stat(path); err == nil && !configInitForce {
			ConfigLogger.Infof("Configuration already exists at %s", path)
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " Configuration already exists at " + ui.Path.Sprint(path) + "\n" +
				ui.Info.Sprint("→") + " Use " + ui.Code.Sprint("lockbox config set") + " to change a setting, or --force to overwrite"
			return nil
		}

		config := &configs.Config{
			Store:   configs.StoreConfig{Path: configInitStore, Recipient: configInitRecipient},
			Keyring: configs.KeyringConfig{Public: configInitPublic, Secret: configInitSecret},
		}
		if err := configs.SaveConfig(config); err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to save config: %v", err)
		}
		ConfigLogger.Infof("Wrote %s", path)

		msg := ui.Success.Sprint("✓") + " Configuration written to " + ui.Path.Sprint(path)
		if configInitRecipient == "" {
			msg += "\n" + ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("lockbox config set store.recipient <email or key id>") + " before adding secrets"
		}
		spinner.FinalMSG = msg
		return nil
	},
}
