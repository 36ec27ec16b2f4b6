package cmd

import (
	"github.com/devforge/devforge/internal/ui"
	"github.com/devforge/devforge/internal/utils"
	"github.com/devforge/devforge/internal/workflows"

	"github.com/spf13/cobra"
)

var setFromStdin bool

func init() {
	setCmd.Flags().BoolVar(&setFromStdin, "stdin", false, "read the value from standard input")
}

func resetSetCommandState() {
	setFromStdin = false
}

var setCmd = &cobra.Command{
	Use:   "set NAME [VALUE]",
	Short: "Encrypts and stores a secret",
	Long: `Encrypts a value and stores it under NAME.

Without VALUE the value is read from a hidden prompt, or from standard input
with --stdin or when input is piped. Passing VALUE on the command line leaves it in your shell
history, so prefer the prompt for real credentials.

Examples:
  devforge secrets set DATABASE_PASSWORD
  echo "$TOKEN" | devforge secrets set API_TOKEN --stdin`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		Logger.Infof("Starting set command for %s", name)

		var value string
		switch {
		case len(args) == 2:
			if setFromStdin {
				return printError("Cannot combine VALUE with "+ui.Flag.Sprint("--stdin"), errConflictingValueSources)
			}
			Logger.Warnf("Values passed as arguments end up in your shell history")
			value = args[1]
		case setFromStdin || !utils.IsTerminal():
			Logger.Debugf("Reading value from stdin")
			v, err := utils.ReadStdin()
			if err != nil {
				return printError("Failed to read the secret value", err)
			}
			value = v
		default:
			v, err := utils.ReadHidden("Value for " + name + ": ")
			if err != nil {
				return printError("Failed to read the secret value", err)
			}
			value = v
		}

		spinner, cleanup := startSpinner("Storing secret...", verbose)
		defer cleanup()

		result, err := workflows.Set(cmd.Context(), workflows.SetOptions{
			ProjectOptions: projectOptions(),
			Name:           name,
			Value:          value,
		})
		if err != nil {
			return fail(spinner, "Failed to store "+name, err)
		}

		verb := "stored"
		if result.Replaced {
			verb = "updated"
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Secret " + ui.Name.Sprint(result.Name) + " " + verb
		return nil
	},
}
