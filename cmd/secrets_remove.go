package cmd

import (
	"context"
	"errors"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	"github.com/PolarWolf314/lockbox/internal/ui"
	"github.com/PolarWolf314/lockbox/internal/workflows"
	"github.com/spf13/cobra"
)

func init() {
	SecretsCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Deletes a secret",
	Long: `Deletes a secret and commits the removal. Earlier versions remain in the
store's git history.

Examples:
  lockbox secrets remove old-bank`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	name := args[0]
	Logger.Infof("Starting remove command for %s", name)

	spinner, cleanup := startSpinner("Removing "+name+"...", verbose)
	defer cleanup()

	result, err := workflows.Remove(context.Background(), workflows.RemoveOptions{
		Name:   name,
		Logger: Logger,
	})
	if err != nil {
		spinner.FinalMSG = formatSecretError(err, name)
		if isSecretUnexpectedError(err) {
			return err
		}
		return nil
	}

	spinner.FinalMSG = ui.Success.Sprint("✓") + " Removed " + ui.Name.Sprint(result.Name) + " " + commitSuffix(result.Commit)
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, kerrors.ErrNotFound)
}
