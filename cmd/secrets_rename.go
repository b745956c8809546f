package cmd

import (
	"context"

	"github.com/PolarWolf314/lockbox/internal/ui"
	"github.com/PolarWolf314/lockbox/internal/workflows"
	"github.com/spf13/cobra"
)

func init() {
	SecretsCmd.AddCommand(renameCmd)
}

var renameCmd = &cobra.Command{
	Use:     "rename <name> <new-name>",
	Aliases: []string{"mv"},
	Short:   "Moves a secret to a new name",
	Long: `Moves a secret to a new name, keeping its fields, and commits the change.
Renaming onto an existing name fails without changing anything.

Examples:
  lockbox secrets rename mail email`,
	Args: cobra.ExactArgs(2),
	RunE: runRename,
}

func runRename(cmd *cobra.Command, args []string) error {
	from, to := args[0], args[1]
	Logger.Infof("Starting rename command from %s to %s", from, to)

	spinner, cleanup := startSpinner("Renaming "+from+"...", verbose)
	defer cleanup()

	result, err := workflows.Rename(context.Background(), workflows.RenameOptions{
		From:   from,
		To:     to,
		Logger: Logger,
	})
	if err != nil {
		name := to
		if isNotFound(err) {
			name = from
		}
		spinner.FinalMSG = formatSecretError(err, name)
		if isSecretUnexpectedError(err) {
			return err
		}
		return nil
	}

	spinner.FinalMSG = ui.Success.Sprint("✓") + " Moved " + ui.Name.Sprint(result.PreviousName) + " to " + ui.Name.Sprint(result.Name) + " " + commitSuffix(result.Commit)
	return nil
}
