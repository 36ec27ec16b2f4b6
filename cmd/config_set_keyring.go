package cmd

import (
	"fmt"
	"strconv"

	"github.com/devforge/devforge/internal/configs"
	"github.com/devforge/devforge/internal/ui"

	"github.com/spf13/cobra"
)

var configSetKeyringCmd = &cobra.Command{
	Use:   "set-keyring true|false",
	Short: "Enable or disable the OS keyring for project keys",
	Long: `Controls whether new project keys are stored in the OS keyring.

With the keyring disabled, new keys are kept in permission-restricted files
in the keys directory. Keys already in the keyring stay there and are still
read, so existing projects keep working with the key they were created with.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		enabled, err := strconv.ParseBool(args[0])
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Expected true or false, got %q", args[0])
		}

		spinner, cleanup := startSpinnerWithFlags("Updating configuration...", configVerbose, configDebug)
		defer cleanup()

		config, err := configs.LoadConfig()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to load config: %v", err)
		}

		config.Secrets.Keyring = enabled
		if err := configs.SaveConfig(config); err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to save config: %v", err)
		}
		ConfigLogger.Infof("Saved keyring=%t to %s", enabled, configs.ConfigPath())

		state := "disabled"
		if enabled {
			state = "enabled"
		}
		spinner.FinalMSG = fmt.Sprintf("%s OS keyring %s", ui.Success.Sprint("✓"), state)
		return nil
	},
}
