package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/cardgen/internal/card"
)

const sampleYAML = `
src_dir: src
spells_dir: /art/spells
working_dir: work
cards_data_url: https://example.com/cards.json
cards:
  knight: knight_src
  mega-knight: chr_mega_knight
distribute:
  destinations:
    - root: /srv/web
    - root: assets
      include_png8: true
`

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML), "/base")
	require.NoError(t, err)

	assert.Equal(t, "/base/work", cfg.WorkingDir)
	assert.Equal(t, "/base/work/src", cfg.SrcDir)
	assert.Equal(t, "/art/spells", cfg.SpellsDir)
	assert.Equal(t, "/base/work/cards", cfg.OutputPNG24Dir)
	assert.Equal(t, "/base/work/cards-gold-png8", cfg.OutputPNG8GoldDir)
	assert.Equal(t, "/base/work/cards.json", cfg.CardsData)
	assert.Equal(t, ProfileAdobeRGB, cfg.ColorProfile)
	assert.Equal(t, QuantizerPngquant, cfg.Quantizer)
	assert.Equal(t, "pngquant", cfg.PngquantBin)

	wantCards := map[string]string{"knight": "knight_src", "mega-knight": "chr_mega_knight"}
	if diff := cmp.Diff(wantCards, cfg.Cards); diff != "" {
		t.Errorf("cards mapping mismatch (-want +got):\n%s", diff)
	}

	wantDest := []Destination{
		{Root: "/srv/web"},
		{Root: "/base/work/assets", IncludePNG8: true},
	}
	if diff := cmp.Diff(wantDest, cfg.Distribute.Destinations); diff != "" {
		t.Errorf("destinations mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "/base/work", cfg.Distribute.SourceRoot)
	assert.Contains(t, cfg.Distribute.Folders, "cards-150-gold")

	assert.Equal(t, 10, cfg.Mastery.Levels)
	assert.Equal(t, 76, cfg.Mastery.OffsetX)
	assert.Equal(t, 64, cfg.Mastery.OffsetY)
	assert.Equal(t, "/art/spells", cfg.Mastery.SpellsDir)
	assert.Equal(t, "TOKEN", cfg.Icons.TokenEnv)
}

func TestParseRelativeBase(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		wantSpells  string
		wantMastery string
	}{
		{
			name:        "inherits spells_dir",
			yaml:        "src_dir: src\nspells_dir: spells\nworking_dir: work\n",
			wantSpells:  filepath.Join("work", "spells"),
			wantMastery: filepath.Join("work", "spells"),
		},
		{
			name:        "own spells_dir",
			yaml:        "src_dir: src\nspells_dir: spells\nworking_dir: work\nmastery:\n  spells_dir: hires\n",
			wantSpells:  filepath.Join("work", "spells"),
			wantMastery: filepath.Join("work", "hires"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml), ".")
			require.NoError(t, err)
			assert.Equal(t, "work", cfg.WorkingDir)
			assert.Equal(t, tt.wantSpells, cfg.SpellsDir)
			assert.Equal(t, tt.wantMastery, cfg.Mastery.SpellsDir)
			assert.Equal(t, filepath.Join("work", "mastery"), cfg.Mastery.OutputDir)
		})
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing src_dir", "spells_dir: s\n"},
		{"missing spells_dir", "src_dir: s\n"},
		{"bad profile", "src_dir: a\nspells_dir: b\ncolor_profile: p3\n"},
		{"bad quantizer", "src_dir: a\nspells_dir: b\nquantizer: magic\n"},
		{"bad yaml", "src_dir: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), "/base")
			assert.Error(t, err)
		})
	}
}

func TestVariantDirectories(t *testing.T) {
	cfg, err := Parse([]byte("src_dir: a\nspells_dir: b\n"), "/w")
	require.NoError(t, err)

	assert.Equal(t, "/w/cards", cfg.PNG24Dir(card.Variant{}))
	assert.Equal(t, "/w/cards-elixir", cfg.PNG24Dir(card.Variant{Elixir: true}))
	assert.Equal(t, "/w/cards-gold", cfg.PNG24Dir(card.Variant{Gold: true, Elixir: true}))
	assert.Equal(t, "/w/cards-png8", cfg.PNG8Dir(card.Variant{}))
	assert.Equal(t, "/w/cards-gold-png8", cfg.PNG8Dir(card.Variant{Gold: true}))
	assert.Equal(t, "/w/cards-elixir-png8", cfg.PNG8Dir(card.Variant{Elixir: true}))
}

func TestLoadRecordsPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("src_dir: src\nspells_dir: spells\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, dir, cfg.WorkingDir)
	assert.Equal(t, filepath.Join(dir, "spells"), cfg.SpellsDir)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestSettingsRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	settings, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "info", settings.LogLevel)
	assert.FileExists(t, GetSettingsFilePath())

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("src_dir: a\nspells_dir: b\n"), 0644))
	require.NoError(t, SetDefaultConfig(cfgPath))

	settings, err = LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, cfgPath, settings.DefaultConfig)

	got, err := ResolveConfigPath("", settings)
	require.NoError(t, err)
	assert.Equal(t, cfgPath, got)

	_, err = ResolveConfigPath(filepath.Join(dir, "nope.yaml"), settings)
	assert.Error(t, err)
}
