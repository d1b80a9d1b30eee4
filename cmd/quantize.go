package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardgen/internal/pipeline"
)

var quantizeCmd = &cobra.Command{
	Use:   "quantize",
	Short: "Create 256-color copies of a generated card set",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd.Context(), false)
		if err != nil {
			return err
		}

		step := pipeline.Quantize(variantFromFlags(cmd))
		return pipeline.NewRunner(env, []pipeline.Step{step}).Run(cmd.Context())
	},
}

func init() {
	RootCmd.AddCommand(quantizeCmd)

	variantFlags(quantizeCmd)
}
