// Package mastery renders the per-level mastery badges of every card.
package mastery

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/arcanaland/cardgen/internal/catalog"
	"github.com/arcanaland/cardgen/internal/compose"
	"github.com/arcanaland/cardgen/internal/config"
)

// Generator draws badges from the mask and level overlays in one assets directory.
type Generator struct {
	cfg    config.Mastery
	mask   *image.NRGBA
	levels []*image.NRGBA
}

// NewGenerator loads mask.png and lvl1.png .. lvlN.png from cfg.AssetsDir.
func NewGenerator(cfg config.Mastery) (*Generator, error) {
	mask, err := open(filepath.Join(cfg.AssetsDir, "mask.png"))
	if err != nil {
		return nil, err
	}

	g := &Generator{cfg: cfg, mask: mask}
	for lvl := 1; lvl <= cfg.Levels; lvl++ {
		img, err := open(filepath.Join(cfg.AssetsDir, fmt.Sprintf("lvl%d.png", lvl)))
		if err != nil {
			return nil, err
		}
		g.levels = append(g.levels, img)
	}

	return g, nil
}

// Badge composes art for the given 1-based level.
func (g *Generator) Badge(art image.Image, level int) (*image.NRGBA, error) {
	if level < 1 || level > len(g.levels) {
		return nil, fmt.Errorf("level %d out of range 1-%d", level, len(g.levels))
	}

	size := g.mask.Bounds().Size()
	canvas := imaging.New(size.X, size.Y, color.NRGBA{})
	canvas = imaging.Paste(canvas, art, image.Pt(g.cfg.OffsetX, g.cfg.OffsetY))
	masked := compose.ApplyMask(canvas, g.mask)

	return compose.Stack(size, masked, g.levels[level-1]), nil
}

// Generate writes <key>-lvl<N>.png for every entry and level into cfg.OutputDir.
func (g *Generator) Generate(entries []catalog.Entry, log logrus.FieldLogger) error {
	if err := os.MkdirAll(g.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("error creating %s: %w", g.cfg.OutputDir, err)
	}

	for _, e := range entries {
		art, err := imaging.Open(filepath.Join(g.cfg.SpellsDir, e.Filename+".png"))
		if err != nil {
			return fmt.Errorf("error opening art for %s: %w", e.Card.Key, err)
		}

		for lvl := 1; lvl <= len(g.levels); lvl++ {
			img, err := g.Badge(art, lvl)
			if err != nil {
				return err
			}
			dst := filepath.Join(g.cfg.OutputDir, fmt.Sprintf("%s-lvl%d.png", e.Card.Key, lvl))
			if err := imaging.Save(img, dst); err != nil {
				return fmt.Errorf("error saving %s: %w", dst, err)
			}
			log.WithFields(logrus.Fields{"card": e.Card.Key, "level": lvl, "path": dst}).Info("mastery badge generated")
		}
	}

	return nil
}

func open(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening mastery asset: %w", err)
	}
	return imaging.Clone(img), nil
}
