package cmd

import (
	"github.com/devforge/devforge/internal/ui"
	"github.com/devforge/devforge/internal/utils"
	"github.com/devforge/devforge/internal/workflows"

	"github.com/spf13/cobra"
)

var injectOutput string

func init() {
	injectCmd.Flags().StringVarP(&injectOutput, "output", "o", "", "file to write (default: the configured runtime env file)")
}

func resetInjectCommandState() {
	injectOutput = ""
}

var injectCmd = &cobra.Command{
	Use:   "inject",
	Short: "Writes all secrets to the runtime env file",
	Long: `Decrypts every secret and writes NAME=value lines to the runtime env file
(.env.secrets by default) with owner-only permissions, replacing any
existing file.

This is the only command that writes plaintext secrets to disk. Make sure
the output file is listed in .gitignore.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting inject command")
		spinner, cleanup := startSpinner("Injecting secrets...", verbose)
		defer cleanup()

		result, err := workflows.Inject(cmd.Context(), workflows.InjectOptions{
			ProjectOptions: projectOptions(),
			OutputPath:     injectOutput,
		})
		if err != nil {
			return fail(spinner, "Failed to write the runtime env file", err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Wrote " + ui.Success.Sprintf("%d", result.Count) + " " +
			utils.Plural(result.Count, "secret") + " to " + ui.Path.Sprint(result.Path) + "\n" +
			ui.Warning.Sprint("Warning: ") + "This file contains plaintext secrets. Never commit it to version control"
		return nil
	},
}
