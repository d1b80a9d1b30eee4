package validator

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"sort"

	"github.com/arcanaland/cardgen/internal/card"
	"github.com/arcanaland/cardgen/internal/compose"
	"github.com/arcanaland/cardgen/internal/config"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// Validator checks that a config, its source directories and the card
// feed are complete enough for a full run.
type Validator struct {
	Config  *config.Config
	Cards   []card.Card
	Results ValidationResults
}

func NewValidator(cfg *config.Config, cards []card.Card) *Validator {
	return &Validator{
		Config:  cfg,
		Cards:   cards,
		Results: ValidationResults{},
	}
}

func (v *Validator) Validate() (ValidationResults, error) {
	if v.Config == nil {
		return v.Results, fmt.Errorf("no config to validate")
	}

	if !v.validateDirectories() {
		return v.Results, nil
	}
	v.validateAssets()
	v.validateAssetSizes()
	v.validateFeed()
	v.validateMapping()

	return v.Results, nil
}

func (v *Validator) errorf(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

// validateDirectories reports whether the source directories exist; the
// remaining checks are meaningless without them.
func (v *Validator) validateDirectories() bool {
	ok := true
	for _, dir := range []struct{ name, path string }{
		{"src_dir", v.Config.SrcDir},
		{"spells_dir", v.Config.SpellsDir},
	} {
		info, err := os.Stat(dir.path)
		if err != nil || !info.IsDir() {
			v.errorf("%s not found: %s", dir.name, dir.path)
			ok = false
		}
	}
	return ok
}

// requiredAssets lists every frame, mask, background and badge a full run reads.
func (v *Validator) requiredAssets() []string {
	seen := make(map[string]bool)
	var names []string
	for _, gold := range []bool{false, true} {
		for _, name := range compose.AssetNames(card.Variant{Gold: gold}) {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	var badges []string
	for _, c := range v.Cards {
		if _, ok := v.Config.Cards[c.Key]; !ok {
			continue
		}
		name := compose.ElixirBadge(c.Elixir)
		if !seen[name] {
			seen[name] = true
			badges = append(badges, name)
		}
	}
	sort.Strings(badges)

	return append(names, badges...)
}

func (v *Validator) validateAssets() {
	for _, name := range v.requiredAssets() {
		path := compose.AssetPath(v.Config.SrcDir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			v.errorf("asset not found: %s", path)
		}
	}
}

// validateAssetSizes warns about frames, masks and backgrounds that do not
// match the generic frame of their variant.
func (v *Validator) validateAssetSizes() {
	for _, gold := range []bool{false, true} {
		variant := card.Variant{Gold: gold}
		reference := compose.AssetPath(v.Config.SrcDir, compose.TreatmentFor(card.Commons, gold).Frame)
		want, err := imageSize(reference)
		if err != nil {
			continue
		}

		for _, name := range compose.AssetNames(variant) {
			path := compose.AssetPath(v.Config.SrcDir, name)
			got, err := imageSize(path)
			if err != nil {
				if !os.IsNotExist(err) {
					v.errorf("unreadable asset %s: %v", path, err)
				}
				continue
			}
			if got != want {
				v.warnf("asset %s is %dx%d, expected %dx%d", path, got.X, got.Y, want.X, want.Y)
			}
		}
	}
}

func (v *Validator) validateFeed() {
	if len(v.Cards) == 0 {
		v.warnf("card data is empty")
		return
	}

	seen := make(map[string]bool)
	for _, c := range v.Cards {
		if c.Key == "" {
			v.errorf("card data contains a record without a key")
			continue
		}
		if seen[c.Key] {
			v.warnf("card %s appears more than once in card data", c.Key)
		}
		seen[c.Key] = true

		if !c.Rarity.Known() {
			v.warnf("card %s has unknown rarity %q, the Commons treatment will be used", c.Key, c.Rarity)
		}
	}
}

func (v *Validator) validateMapping() {
	inFeed := make(map[string]bool)
	for _, c := range v.Cards {
		inFeed[c.Key] = true
		if _, ok := v.Config.Cards[c.Key]; !ok {
			v.warnf("card %s does not have a corresponding file", c.Key)
		}
	}

	keys := make([]string, 0, len(v.Config.Cards))
	for key := range v.Config.Cards {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		path := compose.AssetPath(v.Config.SpellsDir, v.Config.Cards[key])
		if _, err := os.Stat(path); os.IsNotExist(err) {
			v.errorf("source art for %s not found: %s", key, path)
		}
		if !inFeed[key] {
			v.warnf("mapped card %s is not in the card data", key)
		}
	}
}

func imageSize(path string) (image.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Point{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return image.Point{}, err
	}
	return image.Pt(cfg.Width, cfg.Height), nil
}
