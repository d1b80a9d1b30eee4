package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardgen/internal/icons"
)

var iconsCmd = &cobra.Command{
	Use:   "icons [player_tag]",
	Short: "Download the card icons listed on a player profile",
	Long: `Icons fetches a player profile from the API and saves every card icon as
<key>.png in icons.output_dir. The API token is read from the environment
variable named by icons.token_env (TOKEN by default).

Examples:
  TOKEN=... cardgen icons C0G20PR2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client, err := icons.NewClient(cfg.Icons)
		if err != nil {
			return err
		}
		defer client.Close()

		return icons.Download(cmd.Context(), client, args[0], cfg.Icons.OutputDir, logger)
	},
}

func init() {
	RootCmd.AddCommand(iconsCmd)
}
