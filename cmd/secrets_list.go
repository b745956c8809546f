package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/lockbox/internal/ui"
	"github.com/PolarWolf314/lockbox/internal/utils"
	"github.com/PolarWolf314/lockbox/internal/workflows"
	"github.com/spf13/cobra"
)

var listPlain bool

func init() {
	listCmd.Flags().BoolVar(&listPlain, "plain", false, "print one name per line without decoration")

	SecretsCmd.AddCommand(listCmd)
}

// resetListCommandState resets the list command's global state for testing.
func resetListCommandState() {
	listPlain = false
}

var listCmd = &cobra.Command{
	Use:     "list [pattern]",
	Aliases: []string{"ls"},
	Short:   "Lists stored secrets",
	Long: `Lists the names of all stored secrets in sorted order.

An optional glob pattern filters the names.

Examples:
  lockbox secrets list
  lockbox secrets list 'bank-*'
  lockbox secrets list '{mail,chat}*' --plain`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting list command")

	pattern := ""
	if len(args) == 1 {
		pattern = args[0]
	}

	spinner, cleanup := startSpinner("Listing secrets...", verbose)
	defer cleanup()

	result, err := workflows.List(context.Background(), workflows.ListOptions{
		Pattern: pattern,
		Logger:  Logger,
	})
	if err != nil {
		spinner.FinalMSG = formatSecretError(err, "")
		if isSecretUnexpectedError(err) {
			return err
		}
		return nil
	}

	Logger.Debugf("Found %d secrets, %d shown", result.Total, len(result.Names))

	if listPlain {
		out := ""
		for _, name := range result.Names {
			out += name + "\n"
		}
		spinner.FinalMSG = out
		return nil
	}

	switch {
	case result.Total == 0:
		spinner.FinalMSG = ui.Info.Sprint("ℹ") + " The store is empty\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("lockbox secrets add <name> password=...") + " to add a secret"
	case len(result.Names) == 0:
		spinner.FinalMSG = ui.Info.Sprint("ℹ") + " No secrets match " + ui.Highlight.Sprint(pattern)
	default:
		spinner.FinalMSG = fmt.Sprintf("%s %d of %d secrets in %s", ui.Success.Sprint("✓"), len(result.Names), result.Total, ui.Path.Sprint(result.StorePath)) +
			utils.FormatNames(result.Names)
	}
	return nil
}
