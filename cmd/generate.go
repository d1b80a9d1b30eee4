package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardgen/internal/card"
	"github.com/arcanaland/cardgen/internal/pipeline"
)

// variantFlags registers --gold and --elixir on c.
func variantFlags(c *cobra.Command) {
	c.Flags().Bool("gold", false, "Use the gold set")
	c.Flags().Bool("elixir", false, "Use the set with elixir badges")
}

func variantFromFlags(c *cobra.Command) card.Variant {
	gold, _ := c.Flags().GetBool("gold")
	elixir, _ := c.Flags().GetBool("elixir")
	return card.Variant{Gold: gold, Elixir: elixir}
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one full-color card set",
	Long: `Generate composes every mapped card for one variant and writes <key>.png
into the variant's output directory.

Examples:
  cardgen generate
  cardgen generate --gold
  cardgen generate --elixir`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		remote, _ := cmd.Flags().GetBool("remote")
		env, err := loadEnv(cmd.Context(), remote)
		if err != nil {
			return err
		}

		step := pipeline.Generate(variantFromFlags(cmd))
		return pipeline.NewRunner(env, []pipeline.Step{step}).Run(cmd.Context())
	},
}

func init() {
	RootCmd.AddCommand(generateCmd)

	variantFlags(generateCmd)
	generateCmd.Flags().Bool("remote", false, "Refresh the local card data from cards_data_url first")
}
