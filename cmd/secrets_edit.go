package cmd

import (
	"context"
	"strings"

	"github.com/PolarWolf314/lockbox/internal/ui"
	"github.com/PolarWolf314/lockbox/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	editUnset          []string
	editRename         string
	editStdin          bool
	editPromptPassword bool
)

func init() {
	editCmd.Flags().StringSliceVarP(&editUnset, "unset", "u", nil, "remove a field (repeatable)")
	editCmd.Flags().StringVar(&editRename, "rename", "", "store the secret under a new name")
	editCmd.Flags().BoolVar(&editStdin, "stdin", false, "replace all fields with a TOML table read from stdin")
	editCmd.Flags().BoolVarP(&editPromptPassword, "password", "p", false, "prompt for a new password without echoing it")

	SecretsCmd.AddCommand(editCmd)
}

// resetEditCommandState resets the edit command's global state for testing.
func resetEditCommandState() {
	editUnset = nil
	editRename = ""
	editStdin = false
	editPromptPassword = false
}

var editCmd = &cobra.Command{
	Use:   "edit <name> [key=value...]",
	Short: "Changes the fields of a secret",
	Long: `Changes, adds or removes fields of an existing secret and commits the
result. With --rename the secret is moved to a new name in the same commit.

Examples:
  lockbox secrets edit mail password=n3w
  lockbox secrets edit mail --unset note --unset pin
  lockbox secrets edit mail --rename email
  lockbox secrets show mail | ... | lockbox secrets edit mail --stdin`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	name := args[0]
	Logger.Infof("Starting edit command for %s", name)

	var replace map[string]string
	set, err := collectFields(args[1:], false, editPromptPassword)
	if err != nil {
		return Logger.ErrorfAndReturn("%v", err)
	}
	if editStdin {
		replace, err = collectFields(nil, true, false)
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}
	}

	spinner, cleanup := startSpinner("Updating "+name+"...", verbose)
	defer cleanup()

	result, err := workflows.Edit(context.Background(), workflows.EditOptions{
		Name:    name,
		NewName: editRename,
		Replace: replace,
		Set:     set,
		Unset:   editUnset,
		Logger:  Logger,
	})
	if err != nil {
		target := name
		if editRename != "" {
			target = editRename
		}
		spinner.FinalMSG = formatSecretError(err, target)
		if isSecretUnexpectedError(err) {
			return err
		}
		return nil
	}

	msg := ui.Success.Sprint("✓") + " Updated " + ui.Name.Sprint(result.Name) + " " + commitSuffix(result.Commit)
	if result.PreviousName != "" {
		msg = ui.Success.Sprint("✓") + " Moved " + ui.Name.Sprint(result.PreviousName) + " to " + ui.Name.Sprint(result.Name) + " " + commitSuffix(result.Commit)
	}
	if len(result.Changed) > 0 {
		msg += "\n  changed: " + ui.Field.Sprint(strings.Join(result.Changed, ", "))
	}
	if len(result.Removed) > 0 {
		msg += "\n  removed: " + ui.Field.Sprint(strings.Join(result.Removed, ", "))
	}
	spinner.FinalMSG = msg
	return nil
}
