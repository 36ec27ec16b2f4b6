package cmd

import (
	"fmt"

	"github.com/devforge/devforge/internal/workflows"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Prints a decrypted secret",
	Long: `Decrypts a secret and prints its value to standard output, so it can be
used in scripts:

  export DATABASE_PASSWORD="$(devforge secrets get DATABASE_PASSWORD)"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting get command for %s", args[0])

		result, err := workflows.Get(cmd.Context(), workflows.GetOptions{
			ProjectOptions: projectOptions(),
			Name:           args[0],
		})
		if err != nil {
			return printError("Failed to read "+args[0], err)
		}

		// The value goes straight to stdout, never through the logger.
		fmt.Fprintln(cmd.OutOrStdout(), result.Value)
		return nil
	},
}
