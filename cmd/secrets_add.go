package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/lockbox/internal/codec"
	"github.com/PolarWolf314/lockbox/internal/history"
	"github.com/PolarWolf314/lockbox/internal/ui"
	"github.com/PolarWolf314/lockbox/internal/utils"
	"github.com/PolarWolf314/lockbox/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	addStdin          bool
	addPromptPassword bool
)

func init() {
	addCmd.Flags().BoolVar(&addStdin, "stdin", false, "read fields as a TOML table from stdin")
	addCmd.Flags().BoolVarP(&addPromptPassword, "password", "p", false, "prompt for the password field without echoing it")

	SecretsCmd.AddCommand(addCmd)
}

// resetAddCommandState resets the add command's global state for testing.
func resetAddCommandState() {
	addStdin = false
	addPromptPassword = false
}

var addCmd = &cobra.Command{
	Use:   "add <name> [key=value...]",
	Short: "Creates a new secret",
	Long: `Encrypts a new secret and commits it to the store.

Fields are given as key=value arguments, read from stdin as a TOML table,
or both; arguments win over stdin. Adding a name that already exists fails
without changing anything.

Examples:
  lockbox secrets add mail login=alice@example.com -p
  lockbox secrets add github totpurl='otpauth://totp/GitHub?secret=...'
  printf 'login = "bob"\npassword = "hunter2"\n' | lockbox secrets add bank --stdin`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	Logger.Infof("Starting add command for %s", name)

	fields, err := collectFields(args[1:], addStdin, addPromptPassword)
	if err != nil {
		return Logger.ErrorfAndReturn("%v", err)
	}
	Logger.Debugf("Collected %d fields", len(fields))

	spinner, cleanup := startSpinner("Encrypting "+name+"...", verbose)
	defer cleanup()

	result, err := workflows.Add(context.Background(), workflows.AddOptions{
		Name:   name,
		Fields: fields,
		Logger: Logger,
	})
	if err != nil {
		spinner.FinalMSG = formatSecretError(err, name)
		if isSecretUnexpectedError(err) {
			return err
		}
		return nil
	}

	spinner.FinalMSG = ui.Success.Sprint("✓") + " Created " + ui.Name.Sprint(result.Name) + " " + commitSuffix(result.Commit)
	return nil
}

// collectFields merges fields from stdin, a password prompt and key=value
// arguments, in increasing precedence.
func collectFields(assignments []string, fromStdin, promptPassword bool) (map[string]string, error) {
	fields := map[string]string{}

	if fromStdin {
		data, err := utils.ReadStdin()
		if err != nil {
			return nil, err
		}
		decoded, err := codec.DecodeBytes(data)
		if err != nil {
			return nil, fmt.Errorf("reading fields from stdin: %w", err)
		}
		for k, v := range decoded {
			fields[k] = v
		}
	}

	if promptPassword {
		read := utils.ReadPassphraseFromTTY
		if !fromStdin && utils.IsTerminal() {
			read = utils.ReadPassphrase
		}
		password, err := read("Password: ")
		if err != nil {
			return nil, err
		}
		fields["password"] = string(password)
	}

	parsed, err := utils.ParseAssignments(assignments)
	if err != nil {
		return nil, err
	}
	for k, v := range parsed {
		fields[k] = v
	}
	return fields, nil
}

// commitSuffix renders the short hash of a commit.
func commitSuffix(c *history.Commit) string {
	if c == nil {
		return ""
	}
	return ui.Muted.Sprint(history.ShortHash(c.Hash))
}
