package cmd

import (
	"errors"
	"strings"

	"github.com/PolarWolf314/lockbox/internal/configs"
	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	"github.com/PolarWolf314/lockbox/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	ConfigCmd.AddCommand(configSetCmd)
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a configuration setting",
	Long: `Stores a single setting in the configuration file. An empty value
restores the default.

Keys:
  store.path        directory holding the encrypted secrets
  store.recipient   email, name or key id to encrypt to
  keyring.public    exported public keyring file
  keyring.secret    exported secret keyring file

Examples:
  lockbox config set store.recipient alice@example.com
  lockbox config set keyring.secret ~/keys/secring.asc
  lockbox config set store.path ""`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		ConfigLogger.Infof("Starting config set command for %s", key)

		spinner, cleanup := startSpinnerWithFlags("Updating configuration...", configVerbose, configDebug)
		defer cleanup()

		config, err := configs.LoadConfig()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to load config: %v", err)
		}

		previous, _ := config.Get(key)
		if err := config.Set(key, value); err != nil {
			if errors.Is(err, kerrors.ErrUnknownConfigKey) {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " Unknown setting " + ui.Highlight.Sprint(key) + "\n" +
					ui.Info.Sprint("→") + " Valid keys: " + strings.Join(configs.Keys(), ", ")
				return nil
			}
			return ConfigLogger.ErrorfAndReturn("Failed to set %s: %v", key, err)
		}

		if err := configs.SaveConfig(config); err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to save config: %v", err)
		}
		ConfigLogger.Debugf("Saved %s", configs.UserLockboxSettings.ConfigFile())

		if strings.TrimSpace(value) == "" {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Reset " + ui.Highlight.Sprint(key) + " to its default"
		} else {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Set " + ui.Highlight.Sprint(key) + " to " + ui.Path.Sprint(strings.TrimSpace(value))
		}
		if previous != "" {
			spinner.FinalMSG += " " + ui.Muted.Sprint("was "+previous)
		}
		return nil
	},
}
