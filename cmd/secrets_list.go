package cmd

import (
	"fmt"

	"github.com/devforge/devforge/internal/ui"
	"github.com/devforge/devforge/internal/utils"
	"github.com/devforge/devforge/internal/workflows"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists stored secret names",
	Long:  `Lists the names of stored secrets. Values are never decrypted.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list command")

		result, err := workflows.List(cmd.Context(), workflows.ListOptions{ProjectOptions: projectOptions()})
		if err != nil {
			return printError("Failed to list secrets", err)
		}

		out := cmd.OutOrStdout()
		if len(result.Names) == 0 {
			fmt.Fprintln(out, ui.Warning.Sprint("⚠")+" No secrets stored in "+ui.Path.Sprint(result.StorePath))
			fmt.Fprintln(out, ui.Info.Sprint("→")+" Run "+ui.Code.Sprint("devforge secrets set NAME")+" to add one")
			return nil
		}

		for _, name := range result.Names {
			fmt.Fprintln(out, name)
		}
		Logger.Infof("Listed %d %s", len(result.Names), utils.Plural(len(result.Names), "secret"))
		return nil
	},
}
