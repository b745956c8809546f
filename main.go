package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/lockbox/cmd"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lockbox",
	Short: "Lockbox - an OpenPGP password store kept in git.",
	Long: `Lockbox keeps each secret as an OpenPGP-encrypted set of named fields in a
directory that is also a git repository. Every change is committed, so the
full history of the store can be reviewed and restored with git.

Usage:
  lockbox <command> [flags]

Available Commands:
  secrets    Add, show, edit, rename, remove and review secrets
  config     Manage the store location, recipient key and keyrings

Run 'lockbox help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		figure.NewColorFigure("Lockbox", "alligator2", "cyan", true).Print()
		fmt.Println()
		fmt.Println("Welcome to Lockbox! Run 'lockbox --help' to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.SecretsCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
