package cmd

import (
	"github.com/devforge/devforge/internal/ui"
	"github.com/devforge/devforge/internal/workflows"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Creates the encrypted secret store for this project",
	Long: `Creates an empty secret store in the project directory.

Running init again is safe: an existing store and its secrets are left
untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")
		spinner, cleanup := startSpinner("Initializing secret store...", verbose)
		defer cleanup()

		result, err := workflows.Init(cmd.Context(), workflows.InitOptions{ProjectOptions: projectOptions()})
		if err != nil {
			return fail(spinner, "Failed to initialize the secret store", err)
		}

		Logger.Infof("Store %s for project %s", result.StorePath, result.ProjectID)
		if !result.Created {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " Secret store already exists at " + ui.Path.Sprint(result.StorePath) + "\n" +
				ui.Info.Sprint("→") + " Existing secrets were left untouched"
			return nil
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Secret store created at " + ui.Path.Sprint(result.StorePath) + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("devforge secrets set NAME") + " to add a secret"
		return nil
	},
}
