package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/lockbox/internal/configs"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
	ConfigCmd.AddCommand(configShowCmd)
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

// effectiveConfig is the JSON form of the resolved settings. The passphrase
// is only reported as present or absent.
type effectiveConfig struct {
	ConfigFile    string `json:"config_file"`
	StorePath     string `json:"store_path"`
	Recipient     string `json:"recipient"`
	PublicKeyring string `json:"public_keyring"`
	SecretKeyring string `json:"secret_keyring"`
	Passphrase    bool   `json:"passphrase_from_env"`
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Displays the effective configuration: the config file merged with
LOCKBOX_* environment variables and defaults.

Examples:
  lockbox config show
  lockbox config show --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config show command")
		ConfigLogger.Debugf("Flags: json=%t", configShowJSON)

		settings, err := configs.Resolve()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to load configuration: %v", err)
		}

		effective := effectiveConfig{
			ConfigFile:    configs.UserLockboxSettings.ConfigFile(),
			StorePath:     settings.StorePath,
			Recipient:     settings.Recipient,
			PublicKeyring: settings.PublicKeyring,
			SecretKeyring: settings.SecretKeyring,
			Passphrase:    settings.Passphrase != "",
		}

		if configShowJSON {
			ConfigLogger.Debugf("Outputting config as JSON")
			output, err := json.MarshalIndent(effective, "", "  ")
			if err != nil {
				return ConfigLogger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
			}
			fmt.Println(string(output))
			return nil
		}

		outputConfigText(effective)
		return nil
	},
}

// outputConfigText outputs the configuration in human-readable format.
func outputConfigText(c effectiveConfig) {
	fmt.Println(color.CyanString("Configuration") + " (" + c.ConfigFile + "):")
	fmt.Println()
	fmt.Printf("  %-16s %s\n", "Store:", color.GreenString(c.StorePath))
	if c.Recipient != "" {
		fmt.Printf("  %-16s %s\n", "Recipient:", color.GreenString(c.Recipient))
	} else {
		fmt.Printf("  %-16s %s\n", "Recipient:", color.YellowString("not set"))
	}
	fmt.Printf("  %-16s %s\n", "Public keyring:", color.GreenString(c.PublicKeyring))
	fmt.Printf("  %-16s %s\n", "Secret keyring:", color.GreenString(c.SecretKeyring))
	if c.Passphrase {
		fmt.Printf("  %-16s %s\n", "Passphrase:", color.YellowString("from LOCKBOX_PASSPHRASE"))
	}
}
