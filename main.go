package main

import (
	"fmt"
	"os"

	"github.com/awnumar/memguard"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/devforge/devforge/cmd"
)

var rootCmd = &cobra.Command{
	Use:   "devforge",
	Short: "devforge - scaffolds and runs local development environments.",
	Long: `devforge sets up local development environments and keeps their
credentials out of your repository.

Usage:
  devforge <command> [flags]

Available Commands:
  secrets    Manage the project's encrypted secrets
  config     Manage devforge configuration

Run 'devforge help <command>' for more details on a specific command.
`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		figure.NewColorFigure("devforge", "alligator2", "green", true).Print()
		fmt.Println()
		fmt.Println("Run 'devforge --help' to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.SecretsCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)
}

func main() {
	// Wipe key material if the process is interrupted.
	memguard.CatchInterrupt()

	err := rootCmd.Execute()
	memguard.Purge()

	if err != nil {
		if !cmd.IsReported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
