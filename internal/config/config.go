package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/arcanaland/cardgen/internal/card"
)

// Config represents the pipeline configuration loaded from config.yaml
type Config struct {
	SrcDir    string `yaml:"src_dir"`
	SpellsDir string `yaml:"spells_dir"`

	OutputPNG24Dir       string `yaml:"output_png24_dir"`
	OutputPNG8Dir        string `yaml:"output_png8_dir"`
	OutputPNG24GoldDir   string `yaml:"output_png24_gold_dir"`
	OutputPNG8GoldDir    string `yaml:"output_png8_gold_dir"`
	OutputPNG24ElixirDir string `yaml:"output_png24_elixir_dir"`
	OutputPNG8ElixirDir  string `yaml:"output_png8_elixir_dir"`

	WorkingDir string `yaml:"working_dir"`
	RawDir     string `yaml:"raw_dir"`

	CardsData    string `yaml:"cards_data"`
	CardsDataURL string `yaml:"cards_data_url"`

	// Cards maps a card key to the stem of its source art in SpellsDir.
	Cards map[string]string `yaml:"cards"`

	ColorProfile string `yaml:"color_profile"`
	Quantizer    string `yaml:"quantizer"`
	PngquantBin  string `yaml:"pngquant_bin"`

	Distribute Distribute `yaml:"distribute"`
	Mastery    Mastery    `yaml:"mastery"`
	Icons      Icons      `yaml:"icons"`

	// Path is the file the configuration was read from.
	Path string `yaml:"-"`
}

// Distribute lists the finished folders and where they get published.
type Distribute struct {
	SourceRoot   string        `yaml:"source_root"`
	Folders      []string      `yaml:"folders"`
	PNG8Folders  []string      `yaml:"png8_folders"`
	Destinations []Destination `yaml:"destinations"`
}

// Destination is one publishing root.
type Destination struct {
	Root        string `yaml:"root"`
	IncludePNG8 bool   `yaml:"include_png8"`
}

// Mastery configures the mastery badge generator.
type Mastery struct {
	AssetsDir string `yaml:"assets_dir"`
	SpellsDir string `yaml:"spells_dir"`
	OutputDir string `yaml:"output_dir"`
	Levels    int    `yaml:"levels"`
	OffsetX   int    `yaml:"offset_x"`
	OffsetY   int    `yaml:"offset_y"`
}

// Icons configures the player icon downloader.
type Icons struct {
	APIURL    string `yaml:"api_url"`
	TokenEnv  string `yaml:"token_env"`
	OutputDir string `yaml:"output_dir"`
}

const (
	ProfileAdobeRGB = "adobe-rgb"
	ProfileNone     = "none"

	QuantizerPngquant = "pngquant"
	QuantizerBuiltin  = "builtin"
)

// Load reads and validates the pipeline configuration at path.
// A relative working_dir is resolved against the file's directory; every
// other relative path is resolved against working_dir.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	cfg.Path = path

	return cfg, nil
}

// Parse decodes a YAML document. working_dir defaults to baseDir and other
// relative paths are resolved against working_dir.
func Parse(data []byte, baseDir string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults(baseDir)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults(baseDir string) {
	if c.WorkingDir == "" {
		c.WorkingDir = baseDir
	}
	c.WorkingDir = resolve(baseDir, c.WorkingDir)

	// everything else hangs off the working directory
	base := c.WorkingDir
	c.SrcDir = resolve(base, c.SrcDir)
	c.SpellsDir = resolve(base, c.SpellsDir)

	c.OutputPNG24Dir = resolveOr(base, c.OutputPNG24Dir, "cards")
	c.OutputPNG8Dir = resolveOr(base, c.OutputPNG8Dir, "cards-png8")
	c.OutputPNG24GoldDir = resolveOr(base, c.OutputPNG24GoldDir, "cards-gold")
	c.OutputPNG8GoldDir = resolveOr(base, c.OutputPNG8GoldDir, "cards-gold-png8")
	c.OutputPNG24ElixirDir = resolveOr(base, c.OutputPNG24ElixirDir, "cards-elixir")
	c.OutputPNG8ElixirDir = resolveOr(base, c.OutputPNG8ElixirDir, "cards-elixir-png8")
	c.RawDir = resolveOr(base, c.RawDir, "cards-raw")
	c.CardsData = resolveOr(base, c.CardsData, "cards.json")

	if c.ColorProfile == "" {
		c.ColorProfile = ProfileAdobeRGB
	}
	if c.Quantizer == "" {
		c.Quantizer = QuantizerPngquant
	}
	if c.PngquantBin == "" {
		c.PngquantBin = "pngquant"
	}

	d := &c.Distribute
	d.SourceRoot = resolveOr(base, d.SourceRoot, ".")
	if d.Folders == nil {
		d.Folders = []string{"cards", "cards-75", "cards-150", "cards-gold", "cards-75-gold", "cards-150-gold"}
	}
	if d.PNG8Folders == nil {
		d.PNG8Folders = []string{"cards-png8", "cards-gold-png8"}
	}
	for i := range d.Destinations {
		d.Destinations[i].Root = resolve(base, d.Destinations[i].Root)
	}

	m := &c.Mastery
	m.AssetsDir = resolveOr(base, m.AssetsDir, "mastery-assets")
	if m.SpellsDir == "" {
		m.SpellsDir = c.SpellsDir
	} else {
		m.SpellsDir = resolve(base, m.SpellsDir)
	}
	m.OutputDir = resolveOr(base, m.OutputDir, "mastery")
	if m.Levels == 0 {
		m.Levels = 10
	}
	if m.OffsetX == 0 && m.OffsetY == 0 {
		m.OffsetX, m.OffsetY = 76, 64
	}

	i := &c.Icons
	if i.APIURL == "" {
		i.APIURL = "https://api.royaleapi.com"
	}
	i.APIURL = strings.TrimRight(i.APIURL, "/")
	if i.TokenEnv == "" {
		i.TokenEnv = "TOKEN"
	}
	i.OutputDir = resolveOr(base, i.OutputDir, "card-api-png")
}

func (c *Config) validate() error {
	if c.SrcDir == "" {
		return fmt.Errorf("src_dir is required")
	}
	if c.SpellsDir == "" {
		return fmt.Errorf("spells_dir is required")
	}

	switch c.ColorProfile {
	case ProfileAdobeRGB, ProfileNone:
	default:
		return fmt.Errorf("unsupported color_profile: %s (supported: %s, %s)", c.ColorProfile, ProfileAdobeRGB, ProfileNone)
	}

	switch c.Quantizer {
	case QuantizerPngquant, QuantizerBuiltin:
	default:
		return fmt.Errorf("unsupported quantizer: %s (supported: %s, %s)", c.Quantizer, QuantizerPngquant, QuantizerBuiltin)
	}

	if c.Mastery.Levels < 0 {
		return fmt.Errorf("mastery.levels must not be negative")
	}

	return nil
}

// PNG24Dir returns the full-color output directory for a variant.
// The gold set takes precedence over the elixir set.
func (c *Config) PNG24Dir(v card.Variant) string {
	switch {
	case v.Gold:
		return c.OutputPNG24GoldDir
	case v.Elixir:
		return c.OutputPNG24ElixirDir
	default:
		return c.OutputPNG24Dir
	}
}

// PNG8Dir returns the palette output directory for a variant.
func (c *Config) PNG8Dir(v card.Variant) string {
	switch {
	case v.Gold:
		return c.OutputPNG8GoldDir
	case v.Elixir:
		return c.OutputPNG8ElixirDir
	default:
		return c.OutputPNG8Dir
	}
}

// WorkingPath joins name onto the working directory.
func (c *Config) WorkingPath(name string) string {
	return filepath.Join(c.WorkingDir, name)
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func resolveOr(base, p, fallback string) string {
	if p == "" {
		p = fallback
	}
	return resolve(base, p)
}
