package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardgen/internal/distribute"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Copy finished card folders to the configured destinations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return distribute.Publish(cfg.Distribute, logger)
	},
}

func init() {
	RootCmd.AddCommand(publishCmd)
}
