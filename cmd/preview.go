package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/cardgen/internal/catalog"
	"github.com/arcanaland/cardgen/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview [card_key]",
	Short: "Display a generated card in the terminal with ANSI art",
	Long: `Preview renders a finished card as truecolor half-block art next to its
rarity and elixir cost. The card must have been generated for the chosen variant.

Examples:
  cardgen preview knight
  cardgen preview --gold mega-knight
  cardgen preview --elixir --width 30 hog-rider`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		width, _ := cmd.Flags().GetInt("width")
		v := variantFromFlags(cmd)

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		cards, err := catalog.LoadFile(cfg.CardsData)
		if err != nil {
			return err
		}
		c, err := catalog.Find(cards, key)
		if err != nil {
			return err
		}

		path := filepath.Join(cfg.PNG24Dir(v), key+".png")
		img, err := imaging.Open(path)
		if err != nil {
			return fmt.Errorf("error opening %s, generate the %s set first: %w", path, v.Name(), err)
		}

		termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || termWidth <= 0 {
			termWidth = 80
		}

		preview.Display(os.Stdout, preview.Render(img, width), preview.Info(c, v, path), termWidth)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(previewCmd)

	variantFlags(previewCmd)
	previewCmd.Flags().IntP("width", "w", preview.DefaultWidth, "Width of the art in terminal columns")
}
