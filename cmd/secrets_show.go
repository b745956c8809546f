package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/lockbox/internal/ui"
	"github.com/PolarWolf314/lockbox/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	showField string
	showTOTP  bool
)

func init() {
	showCmd.Flags().StringVarP(&showField, "field", "f", "", "print only the value of this field")
	showCmd.Flags().BoolVar(&showTOTP, "totp", false, "print only the current one-time code")

	SecretsCmd.AddCommand(showCmd)
}

// resetShowCommandState resets the show command's global state for testing.
func resetShowCommandState() {
	showField = ""
	showTOTP = false
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Decrypts and displays a secret",
	Long: `Decrypts a secret and displays its fields.

The login, username and password fields are shown first. If the secret has
a totpurl field, the current one-time code is shown as well.

Examples:
  lockbox secrets show mail
  lockbox secrets show mail --field password
  lockbox secrets show github --totp`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	name := args[0]
	Logger.Infof("Starting show command for %s", name)

	spinner, cleanup := startSpinner("Decrypting "+name+"...", verbose)
	defer cleanup()

	result, err := workflows.Show(context.Background(), workflows.ShowOptions{
		Name:   name,
		Field:  showField,
		Logger: Logger,
	})
	if err != nil {
		spinner.FinalMSG = formatSecretError(err, name)
		if isSecretUnexpectedError(err) {
			return err
		}
		return nil
	}

	switch {
	case showTOTP:
		if result.TOTP == nil {
			msg := ui.Error.Sprint("✗") + " " + ui.Name.Sprint(name) + " has no usable " + ui.Field.Sprint("totpurl") + " field"
			if result.TOTPError != nil {
				msg += ": " + result.TOTPError.Error()
			}
			spinner.FinalMSG = msg
			return nil
		}
		spinner.FinalMSG = result.TOTP.Code

	case showField != "":
		spinner.FinalMSG = result.Fields[0].Value

	default:
		msg := ui.Name.Sprint(result.Name) + "\n" + formatFields(result.Fields)
		if result.TOTP != nil {
			msg += fmt.Sprintf("  %s %s %s\n", ui.Field.Sprint("code:"), ui.Highlight.Sprint(result.TOTP.Code),
				ui.Muted.Sprintf("expires in %ds", int(result.TOTP.Remaining.Seconds())))
		} else if result.TOTPError != nil {
			msg += ui.Warning.Sprint("⚠") + " Could not generate a one-time code: " + result.TOTPError.Error() + "\n"
		}
		spinner.FinalMSG = msg
	}
	return nil
}
