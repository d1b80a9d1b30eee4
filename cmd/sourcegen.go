package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardgen/internal/catalog"
	"github.com/arcanaland/cardgen/internal/distribute"
)

var sourcegenCmd = &cobra.Command{
	Use:   "sourcegen",
	Short: "Export source art renamed to card keys",
	Long: `Sourcegen copies the source art of every mapped card from spells_dir to
raw_dir/<key>.png.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd.Context(), false)
		if err != nil {
			return err
		}

		entries := catalog.Resolve(env.Cards, env.Mapping, logger)
		return distribute.ExportRaw(entries, env.Config.SpellsDir, env.Config.RawDir, logger)
	},
}

func init() {
	RootCmd.AddCommand(sourcegenCmd)
}
