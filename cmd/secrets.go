package cmd

import (
	logger "github.com/devforge/devforge/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	debug       bool
	projectPath string
	Logger      logger.Logger

	SecretsCmd = &cobra.Command{
		Use:   "secrets",
		Short: "Manage the project's encrypted secrets",
		Long: `Stores secrets for a devforge project in an encrypted file next to the code.

The encryption key is kept in your OS keyring when one is available and in
a permission-restricted key file otherwise. Use inject to write the secrets
to a runtime env file for docker compose or CI.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing secrets command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	SecretsCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	SecretsCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	SecretsCmd.PersistentFlags().StringVarP(&projectPath, "project", "p", "", "project directory (default: nearest directory with a secret store)")

	SecretsCmd.AddCommand(initCmd)
	SecretsCmd.AddCommand(setCmd)
	SecretsCmd.AddCommand(getCmd)
	SecretsCmd.AddCommand(listCmd)
	SecretsCmd.AddCommand(injectCmd)
	SecretsCmd.AddCommand(generateCmd)
	SecretsCmd.AddCommand(importCmd)
	SecretsCmd.AddCommand(scanCmd)
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	projectPath = ""
	resetSetCommandState()
	resetInjectCommandState()
	resetGenerateCommandState()
	resetImportCommandState()
	resetScanCommandState()
}
