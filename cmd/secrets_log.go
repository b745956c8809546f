package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/lockbox/internal/audit"
	"github.com/PolarWolf314/lockbox/internal/history"
	"github.com/PolarWolf314/lockbox/internal/ui"
	"github.com/PolarWolf314/lockbox/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logOperation string
	logSince     string
	logUntil     string
	logOneline   bool
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")

	SecretsCmd.AddCommand(logCmd)
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logOperation = ""
	logSince = ""
	logUntil = ""
	logOneline = false
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log [name]",
	Short: "View the history of the store",
	Long: `Displays the commits recorded for every change to the store.

Pass a secret name to see only the changes that touched it, including
renames from or to that name. Use filters to narrow down the results.

Examples:
  lockbox secrets log                              # View full log
  lockbox secrets log mail                         # History of one secret
  lockbox secrets log -n 10                        # Last 10 entries
  lockbox secrets log --reverse                    # Most recent first
  lockbox secrets log --operation create,delete    # Filter by operation
  lockbox secrets log --since 2024-01-01           # Filter by date
  lockbox secrets log --json                       # JSON output`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	secret := ""
	if len(args) == 1 {
		secret = args[0]
	}

	spinner, cleanup := startSpinner("Loading history...", verbose)
	defer cleanup()

	opts := workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		Secret:     secret,
		Operations: logOperation,
		Since:      logSince,
		Until:      logUntil,
		Logger:     Logger,
	}

	result, err := workflows.Log(context.Background(), opts)
	if err != nil {
		spinner.FinalMSG = formatSecretError(err, secret)
		if isSecretUnexpectedError(err) {
			return err
		}
		return nil
	}

	Logger.Debugf("Read %d entries from history", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	if len(result.Entries) == 0 {
		spinner.FinalMSG = ""
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Println("No history entries found.")
		} else {
			fmt.Println("No history entries found matching the filters.")
		}
		return nil
	}

	spinner.FinalMSG = ""
	if logJSON {
		return outputLogJSON(result.Entries)
	}

	if logOneline {
		outputLogOneline(result.Entries)
		return nil
	}

	outputLogDefault(result.Entries)
	return nil
}

func outputLogJSON(entries []audit.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputLogOneline(entries []audit.Entry) {
	for _, e := range entries {
		date := workflows.FormatDate(e.Timestamp)
		details := workflows.FormatDetailsOneline(e)
		fmt.Printf("%s %s %s %s\n", history.ShortHash(e.Hash), date, e.Operation, details)
	}
}

func outputLogDefault(entries []audit.Entry) {
	for _, e := range entries {
		datetime := workflows.FormatDateTime(e.Timestamp)
		details := workflows.FormatDetails(e)
		fmt.Printf("%s  %-19s  %-7s  %s\n", ui.Muted.Sprint(history.ShortHash(e.Hash)), datetime, e.Operation, details)
	}
}
