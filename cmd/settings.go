package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardgen/internal/config"
)

// settingsCmd represents the settings command group
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage your cardgen settings",
	Long:  `Commands for managing the per-user settings stored in XDG_CONFIG_HOME/cardgen.`,
}

// settingsInitCmd represents the settings init command
var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the settings file",
	Run: func(cmd *cobra.Command, args []string) {
		// PersistentPreRunE already created the file if it was missing
		fmt.Println("Settings file initialized at:", config.GetSettingsFilePath())
		fmt.Println("Run 'cardgen settings set-default <config.yaml>' to choose a default config.")
	},
}

// settingsSetDefaultCmd represents the settings set-default command
var settingsSetDefaultCmd = &cobra.Command{
	Use:   "set-default [config_path]",
	Short: "Set the config used when --config is not given",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		// Try to load the config to make sure it's valid
		if _, err := config.Load(path); err != nil {
			return fmt.Errorf("not a valid config: %w", err)
		}

		if err := config.SetDefaultConfig(path); err != nil {
			return fmt.Errorf("error setting default config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Default config set to: %s\n", path)
		return nil
	},
}

// settingsShowCmd represents the settings show command
var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	Run: func(cmd *cobra.Command, args []string) {
		defaultConfig := settings.DefaultConfig
		if defaultConfig == "" {
			defaultConfig = fmt.Sprintf("(none, ./%s is used)", config.DefaultConfigName)
		}

		fmt.Println(colorize.CyanString("File:           ") + config.GetSettingsFilePath())
		fmt.Println(colorize.CyanString("Default config: ") + colorize.HiWhiteString("%s", defaultConfig))
		fmt.Println(colorize.CyanString("Log level:      ") + colorize.HiWhiteString("%s", settings.LogLevel))
		fmt.Println(colorize.CyanString("Log format:     ") + colorize.HiWhiteString("%s", settings.LogFormat))
	},
}

func init() {
	RootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsInitCmd)
	settingsCmd.AddCommand(settingsSetDefaultCmd)
	settingsCmd.AddCommand(settingsShowCmd)
}
