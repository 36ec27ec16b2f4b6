package cmd

import (
	"errors"
	"fmt"
	"os"

	kerrors "github.com/devforge/devforge/internal/errors"
	"github.com/devforge/devforge/internal/ui"
	"github.com/devforge/devforge/internal/utils"
	"github.com/devforge/devforge/internal/workflows"

	"github.com/spf13/cobra"
)

var scanExcludes []string

func init() {
	scanCmd.Flags().StringSliceVarP(&scanExcludes, "exclude", "e", nil, "glob patterns to skip (repeatable)")
}

func resetScanCommandState() {
	scanExcludes = nil
}

var scanCmd = &cobra.Command{
	Use:   "scan [DIR]",
	Short: "Scans project files for leaked secrets",
	Long: `Looks for credentials committed to project files: cloud keys, tokens,
private keys, password assignments and high-entropy strings.

Exits with a non-zero status when anything is found, so it can run as a
pre-commit hook. Findings show only a masked preview of the match.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting scan command")
		dir := ""
		if len(args) == 1 {
			dir = args[0]
		}

		result, err := workflows.Scan(cmd.Context(), workflows.ScanOptions{
			Dir:      dir,
			Excludes: scanExcludes,
			Logger:   Logger,
		})
		if errors.Is(err, kerrors.ErrSecretsDetected) {
			fmt.Fprintln(os.Stderr, ui.Error.Sprint("✗")+" Found "+ui.Error.Sprintf("%d", len(result.Findings))+" potential "+
				utils.Plural(len(result.Findings), "secret")+" in "+ui.Path.Sprint(result.Dir)+":")
			for _, f := range result.Findings {
				fmt.Fprintf(os.Stderr, "    %s:%d - %s\n", ui.Path.Sprint(f.Path), f.Line, f.Kind)
				fmt.Fprintf(os.Stderr, "      %s\n", ui.Muted.Sprint(f.Preview))
			}
			fmt.Fprintln(os.Stderr, ui.Info.Sprint("→")+" Move these values into the store with "+ui.Code.Sprint("devforge secrets set"))
			return reportedError{err}
		}
		if err != nil {
			return printError("Failed to scan for secrets", err)
		}

		fmt.Println(ui.Success.Sprint("✓") + " No secrets detected in " + ui.Path.Sprint(result.Dir))
		return nil
	},
}
