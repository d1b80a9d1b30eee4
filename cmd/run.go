package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardgen/internal/pipeline"
)

// runCmd represents the full build
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full card build",
	Long: `Run refreshes the card data from cards_data_url when one is configured, then
generates the elixir, normal and gold sets with their thumbnails and palette
copies, and publishes the finished folders.

Steps run strictly in order; the first failure stops the build.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		offline, _ := cmd.Flags().GetBool("offline")
		noPublish, _ := cmd.Flags().GetBool("no-publish")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		refresh := cfg.CardsDataURL != "" && !offline
		env, err := pipeline.NewEnv(cmd.Context(), cfg, refresh, logger)
		if err != nil {
			return err
		}

		steps := pipeline.DefaultPlan()
		if noPublish {
			steps = steps[:len(steps)-1]
		}

		return pipeline.NewRunner(env, steps).Run(cmd.Context())
	},
}

func init() {
	RootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("offline", false, "Use the local card data even when cards_data_url is set")
	runCmd.Flags().Bool("no-publish", false, "Skip copying the finished folders to the destinations")
}
