package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/cardgen/internal/catalog"
	"github.com/arcanaland/cardgen/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the config, source assets and card mapping",
	Long: `Validate checks that the source directories, every frame, mask, background
and elixir badge, and the mapped source art exist before a build.
Cards in the data without a mapping and odd-sized assets are reported as warnings.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		cards, err := catalog.LoadFile(cfg.CardsData)
		if err != nil {
			return fmt.Errorf("validation error: %v", err)
		}

		v := validator.NewValidator(cfg, cards)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %v", err)
		}

		// Display validation results
		fmt.Println("Validation Results:")
		fmt.Println("-------------------")

		if len(results.Errors) == 0 {
			fmt.Printf("✅ Config '%s' is ready for a build (%d cards).\n", cfg.Path, len(cards))
		} else {
			fmt.Printf("❌ Config '%s' has %d validation errors:\n", cfg.Path, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Printf("%d. %s\n", i+1, err)
			}
			return fmt.Errorf("validation failed")
		}

		if len(results.Warnings) > 0 {
			fmt.Println("\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Printf("%d. %s\n", i+1, warn)
			}
		}

		return nil
	},
}
