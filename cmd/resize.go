package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardgen/internal/pipeline"
)

var resizeCmd = &cobra.Command{
	Use:   "resize",
	Short: "Create thumbnails of a generated card set",
	Long: `Resize writes thumbnails that fit within --width x --height into the folder
--name under the working directory. The aspect ratio is kept and images are
never enlarged.

Examples:
  cardgen resize --name cards-75 --width 75 --height 90
  cardgen resize --gold --name cards-150-gold --width 150 --height 180`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := cmd.Flags().GetUint("width")
		height, _ := cmd.Flags().GetUint("height")
		name, _ := cmd.Flags().GetString("name")

		env, err := loadEnv(cmd.Context(), false)
		if err != nil {
			return err
		}

		step := pipeline.Resize(variantFromFlags(cmd), width, height, name)
		return pipeline.NewRunner(env, []pipeline.Step{step}).Run(cmd.Context())
	},
}

func init() {
	RootCmd.AddCommand(resizeCmd)

	variantFlags(resizeCmd)
	resizeCmd.Flags().Uint("width", pipeline.SmallWidth, "Maximum thumbnail width")
	resizeCmd.Flags().Uint("height", pipeline.SmallHeight, "Maximum thumbnail height")
	resizeCmd.Flags().StringP("name", "n", "", "Output folder under the working directory")
	resizeCmd.MarkFlagRequired("name")
}
