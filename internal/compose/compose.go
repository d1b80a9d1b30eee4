// Package compose renders finished card images from source art and the
// rarity-specific frames, masks, backgrounds and elixir badges.
package compose

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/arcanaland/cardgen/internal/card"
	"github.com/arcanaland/cardgen/internal/catalog"
)

// Options configures one generate run.
type Options struct {
	SrcDir    string // frames, masks, backgrounds, badges
	SpellsDir string // source art, <filename>.png
	OutDir    string // finished cards, <key>.png
	Variant   card.Variant
	Profile   Profile
}

// Compositor draws cards for a single variant.
type Compositor struct {
	assets  *Assets
	variant card.Variant
	profile Profile
}

// NewCompositor returns a compositor drawing with assets.
// A nil profile leaves colors untouched.
func NewCompositor(assets *Assets, v card.Variant, profile Profile) *Compositor {
	if profile == nil {
		profile = Identity{}
	}
	return &Compositor{assets: assets, variant: v, profile: profile}
}

// Compose layers art for c and returns the finished card.
func (c *Compositor) Compose(art image.Image, cd card.Card) (*image.NRGBA, error) {
	size := c.assets.Size()
	t := TreatmentFor(cd.Rarity, c.variant.Gold)

	layer := center(art, size)
	if t.Zoom {
		layer = zoom(layer)
	}
	mask, err := c.assets.Get(t.Mask)
	if err != nil {
		return nil, err
	}
	layer = ApplyMask(layer, mask)

	names := Layers(cd, c.variant)
	layers := make([]image.Image, 0, len(names))
	for _, name := range names {
		if name == ArtLayer {
			layers = append(layers, layer)
			continue
		}
		img, err := c.assets.Get(name)
		if err != nil {
			return nil, err
		}
		layers = append(layers, img)
	}

	return c.profile.Convert(Stack(size, layers...)), nil
}

// Render loads the art of e, composes it and saves <key>.png into outDir.
func (c *Compositor) Render(e catalog.Entry, spellsDir, outDir string) (string, error) {
	src := filepath.Join(spellsDir, e.Filename+".png")
	art, err := imaging.Open(src)
	if err != nil {
		return "", fmt.Errorf("error opening art for %s: %w", e.Card.Key, err)
	}

	img, err := c.Compose(art, e.Card)
	if err != nil {
		return "", fmt.Errorf("error composing %s: %w", e.Card.Key, err)
	}

	dst := filepath.Join(outDir, e.Card.Key+".png")
	if err := imaging.Save(img, dst); err != nil {
		return "", fmt.Errorf("error saving %s: %w", dst, err)
	}
	return dst, nil
}

// Generate renders every mapped card for opts.Variant. Cards without a
// filename mapping are skipped with a warning.
func Generate(cards []card.Card, m *catalog.Mapping, opts Options, log logrus.FieldLogger) error {
	log = log.WithField("variant", opts.Variant.Name())

	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	assets, err := LoadAssets(opts.SrcDir, opts.Variant)
	if err != nil {
		return err
	}

	comp := NewCompositor(assets, opts.Variant, opts.Profile)
	for _, e := range catalog.Resolve(cards, m, log) {
		dst, err := comp.Render(e, opts.SpellsDir, opts.OutDir)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"card":   e.Card.Key,
			"rarity": e.Card.Rarity,
			"path":   dst,
		}).Info("card generated")
	}

	return nil
}
