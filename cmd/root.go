package cmd

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardgen/internal/config"
	"github.com/arcanaland/cardgen/internal/logging"
	"github.com/arcanaland/cardgen/internal/pipeline"
)

var (
	configFlag    string
	logLevelFlag  string
	logFormatFlag string

	settings *config.Settings
	logger   *logrus.Logger
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "cardgen",
	Short: "Tool for generating card images",
	Long: `Cardgen composes finished card images from source art and rarity frames,
produces gold and elixir variants, thumbnails and palette copies, and publishes
them to the configured destinations.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		settings, err = config.LoadSettings()
		if err != nil {
			return err
		}

		level := settings.LogLevel
		if cmd.Flags().Changed("log-level") || level == "" {
			level = logLevelFlag
		}
		format := settings.LogFormat
		if cmd.Flags().Changed("log-format") || format == "" {
			format = logFormatFlag
		}

		logger, err = logging.New(level, format, os.Stderr)
		return err
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to the pipeline config (default: settings default_config or ./config.yaml)")
	RootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info", "Log level (debug, info, warn, error)")
	RootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "text", "Log format (text, json)")

	RootCmd.AddCommand(validateCmd)
}

// loadConfig reads the pipeline config selected by --config or the settings.
func loadConfig() (*config.Config, error) {
	path, err := config.ResolveConfigPath(configFlag, settings)
	if err != nil {
		return nil, err
	}
	logger.WithField("path", path).Debug("loading config")
	return config.Load(path)
}

// loadEnv loads the config and card data shared by the pipeline commands.
func loadEnv(ctx context.Context, refresh bool) (*pipeline.Env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return pipeline.NewEnv(ctx, cfg, refresh, logger)
}
