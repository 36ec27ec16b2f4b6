package cmd

import (
	"strings"

	"github.com/devforge/devforge/internal/ui"
	"github.com/devforge/devforge/internal/utils"
	"github.com/devforge/devforge/internal/workflows"

	"github.com/spf13/cobra"
)

var importForce bool

func init() {
	importCmd.Flags().BoolVarP(&importForce, "force", "f", false, "replace secrets that already exist")
}

func resetImportCommandState() {
	importForce = false
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Imports secrets from a dotenv file",
	Long: `Reads NAME=value pairs from a dotenv file and stores each as a secret.
The file is validated as a whole before anything is written. Existing
secrets are kept unless --force is given.

After importing, delete the plaintext file or make sure it is ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting import command")
		spinner, cleanup := startSpinner("Importing secrets...", verbose)
		defer cleanup()

		result, err := workflows.Import(cmd.Context(), workflows.ImportOptions{
			ProjectOptions: projectOptions(),
			Path:           args[0],
			Overwrite:      importForce,
		})
		if err != nil {
			return fail(spinner, "Failed to import "+args[0], err)
		}

		var b strings.Builder
		b.WriteString(ui.Success.Sprint("✓") + " Imported " + ui.Success.Sprintf("%d", len(result.Imported)) + " " +
			utils.Plural(len(result.Imported), "secret") + " from " + ui.Path.Sprint(args[0]) + "\n")
		if len(result.Skipped) > 0 {
			b.WriteString(ui.Warning.Sprint("⚠") + " Kept existing: " + strings.Join(result.Skipped, ", ") + " " +
				ui.Muted.Sprint("use --force to replace") + "\n")
		}
		b.WriteString(ui.Info.Sprint("→") + " Remove the plaintext file once you no longer need it")
		spinner.FinalMSG = b.String()
		return nil
	},
}
