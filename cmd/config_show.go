package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/devforge/devforge/internal/configs"
	"github.com/devforge/devforge/internal/ui"

	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

type configView struct {
	ConfigPath     string `json:"config_path"`
	Keyring        bool   `json:"keyring"`
	KeysDir        string `json:"keys_dir"`
	StoreFile      string `json:"store_file"`
	RuntimeEnvFile string `json:"runtime_env_file"`
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config show command")

		config, err := configs.LoadConfig()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to load config: %v", err)
		}

		view := configView{
			ConfigPath:     configs.ConfigPath(),
			Keyring:        config.Secrets.Keyring,
			KeysDir:        config.KeysDir(),
			StoreFile:      config.Secrets.StoreFile,
			RuntimeEnvFile: config.Secrets.RuntimeEnvFile,
		}

		if configShowJSON {
			output, err := json.MarshalIndent(view, "", "  ")
			if err != nil {
				return ConfigLogger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
			}
			fmt.Println(string(output))
			return nil
		}

		fmt.Println(ui.Info.Sprint("Configuration") + " (" + ui.Path.Sprint(view.ConfigPath) + "):")
		fmt.Println()
		fmt.Printf("  %-18s %t\n", "Keyring:", view.Keyring)
		fmt.Printf("  %-18s %s\n", "Keys directory:", ui.Path.Sprint(view.KeysDir))
		fmt.Printf("  %-18s %s\n", "Store file:", ui.Path.Sprint(view.StoreFile))
		fmt.Printf("  %-18s %s\n", "Runtime env file:", ui.Path.Sprint(view.RuntimeEnvFile))
		return nil
	},
}
