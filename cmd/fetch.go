package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardgen/internal/catalog"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Refresh the local card data from cards_data_url",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		url, _ := cmd.Flags().GetString("url")
		if url == "" {
			url = cfg.CardsDataURL
		}
		if url == "" {
			return fmt.Errorf("no feed url: set cards_data_url or pass --url")
		}

		cards, err := catalog.Refresh(cmd.Context(), url, cfg.CardsData)
		if err != nil {
			return err
		}

		fmt.Printf("%s %d cards written to %s\n", colorize.GreenString("✔"), len(cards), cfg.CardsData)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().String("url", "", "Feed URL (default: cards_data_url from the config)")
}
