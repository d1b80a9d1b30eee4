package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardgen/internal/catalog"
	"github.com/arcanaland/cardgen/internal/mastery"
)

var masteryCmd = &cobra.Command{
	Use:   "mastery",
	Short: "Generate mastery level badges for every card",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd.Context(), false)
		if err != nil {
			return err
		}

		g, err := mastery.NewGenerator(env.Config.Mastery)
		if err != nil {
			return err
		}

		return g.Generate(catalog.Resolve(env.Cards, env.Mapping, logger), logger)
	},
}

func init() {
	RootCmd.AddCommand(masteryCmd)
}
