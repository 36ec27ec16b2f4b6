package cmd

import (
	"strings"

	"github.com/devforge/devforge/internal/secrets"
	"github.com/devforge/devforge/internal/ui"
	"github.com/devforge/devforge/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	generateLength int
	generateForce  bool
)

func init() {
	generateCmd.Flags().IntVarP(&generateLength, "length", "l", secrets.DefaultPasswordLength, "length of each generated value")
	generateCmd.Flags().BoolVarP(&generateForce, "force", "f", false, "replace secrets that already exist")
}

func resetGenerateCommandState() {
	generateLength = secrets.DefaultPasswordLength
	generateForce = false
}

var generateCmd = &cobra.Command{
	Use:   "generate NAME...",
	Short: "Stores randomly generated passwords",
	Long: `Generates a random password for each NAME and stores it, creating the
secret store if needed. Existing secrets are kept unless --force is given.

Example:
  devforge secrets generate DATABASE_PASSWORD SECRET_KEY --length 48`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting generate command for %d name(s)", len(args))
		spinner, cleanup := startSpinner("Generating secrets...", verbose)
		defer cleanup()

		if generateLength <= 0 {
			return fail(spinner, "Invalid --length", errNonPositiveLength)
		}

		result, err := workflows.Seed(cmd.Context(), workflows.SeedOptions{
			ProjectOptions: projectOptions(),
			Names:          args,
			Length:         generateLength,
			Overwrite:      generateForce,
		})
		if err != nil {
			return fail(spinner, "Failed to generate secrets", err)
		}

		var b strings.Builder
		if result.Initialized {
			b.WriteString(ui.Success.Sprint("✓") + " Created a new secret store\n")
		}
		for _, name := range result.Generated {
			b.WriteString(ui.Success.Sprint("✓") + " Generated " + ui.Name.Sprint(name) + "\n")
		}
		for _, name := range result.Skipped {
			b.WriteString(ui.Warning.Sprint("⚠") + " Kept existing " + ui.Name.Sprint(name) + " " + ui.Muted.Sprint("use --force to replace") + "\n")
		}
		spinner.FinalMSG = b.String()
		return nil
	},
}
