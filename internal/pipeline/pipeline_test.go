package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/cardgen/internal/card"
	"github.com/arcanaland/cardgen/internal/compose"
	"github.com/arcanaland/cardgen/internal/config"
)

// workspace writes a 300x400 asset set, the art of knight and a feed with
// knight and the unmapped hog-rider, and returns the parsed config.
func workspace(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	src := filepath.Join(root, "src")
	spells := filepath.Join(root, "spells")
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.MkdirAll(spells, 0755))

	frame := imaging.New(300, 400, color.NRGBA{})
	mask := imaging.New(300, 400, color.NRGBA{A: 255})
	for _, gold := range []bool{false, true} {
		for _, name := range compose.AssetNames(card.Variant{Gold: gold}) {
			img := frame
			if strings.HasPrefix(name, "mask") {
				img = mask
			}
			require.NoError(t, imaging.Save(img, compose.AssetPath(src, name)))
		}
	}
	require.NoError(t, imaging.Save(imaging.New(40, 40, color.NRGBA{B: 255, A: 255}), compose.AssetPath(src, "elixir-3")))
	require.NoError(t, imaging.Save(imaging.New(200, 260, color.NRGBA{R: 200, A: 255}), filepath.Join(spells, "chr_knight.png")))

	feed := `[{"key":"knight","rarity":"Commons","elixir":3},{"key":"hog-rider","rarity":"Rare","elixir":4}]`
	require.NoError(t, os.WriteFile(filepath.Join(root, "cards.json"), []byte(feed), 0644))

	yml := fmt.Sprintf(`
src_dir: src
spells_dir: spells
color_profile: none
quantizer: builtin
cards:
  knight: chr_knight
distribute:
  destinations:
    - root: %s
      include_png8: true
`, filepath.Join(root, "published"))
	cfg, err := config.Parse([]byte(yml), root)
	require.NoError(t, err)
	return cfg
}

func TestDefaultPlanOrder(t *testing.T) {
	var names []string
	for _, s := range DefaultPlan() {
		names = append(names, s.Name)
	}

	want := []string{
		"generate elixir",
		"resize cards-elixir-75",
		"resize cards-elixir-150",
		"generate normal",
		"resize cards-75",
		"resize cards-150",
		"quantize normal",
		"generate gold",
		"resize cards-75-gold",
		"resize cards-150-gold",
		"quantize gold",
		"publish",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}
}

func TestRunDefaultPlan(t *testing.T) {
	cfg := workspace(t)
	logger, hook := test.NewNullLogger()

	env, err := NewEnv(context.Background(), cfg, false, logger)
	require.NoError(t, err)
	require.NoError(t, NewRunner(env, DefaultPlan()).Run(context.Background()))

	for _, dir := range []string{"cards", "cards-gold", "cards-elixir"} {
		img, err := imaging.Open(filepath.Join(cfg.WorkingDir, dir, "knight.png"))
		require.NoError(t, err, dir)
		assert.Equal(t, image.Pt(300, 400), img.Bounds().Size(), dir)
		assert.NoFileExists(t, filepath.Join(cfg.WorkingDir, dir, "hog-rider.png"))
	}

	small, err := imaging.Open(filepath.Join(cfg.WorkingDir, "cards-75", "knight.png"))
	require.NoError(t, err)
	assert.LessOrEqual(t, small.Bounds().Dx(), SmallWidth)
	assert.LessOrEqual(t, small.Bounds().Dy(), SmallHeight)

	published := filepath.Join(cfg.WorkingDir, "published")
	for _, folder := range []string{"cards-150-gold", "cards-png8", "cards-gold-png8"} {
		assert.FileExists(t, filepath.Join(published, folder, "knight.png"))
	}

	// one warning per generate step for the unmapped card
	var warned int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["card"] == "hog-rider" {
			warned++
		}
	}
	assert.Equal(t, 3, warned)
}

func TestNewEnvRefreshesMissingCache(t *testing.T) {
	cfg := workspace(t)
	feed, err := os.ReadFile(cfg.CardsData)
	require.NoError(t, err)
	require.NoError(t, os.Remove(cfg.CardsData))

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write(feed)
	}))
	defer srv.Close()
	cfg.CardsDataURL = srv.URL + "/cards.json"

	logger, _ := test.NewNullLogger()
	env, err := NewEnv(context.Background(), cfg, true, logger)
	require.NoError(t, err)
	require.Len(t, env.Cards, 2)
	assert.FileExists(t, cfg.CardsData)

	require.NoError(t, NewRunner(env, DefaultPlan()).Run(context.Background()))
	assert.FileExists(t, filepath.Join(cfg.WorkingDir, "cards", "knight.png"))
	assert.Equal(t, int32(1), hits.Load(), "feed downloaded once per run")
}

func TestNewEnvWithoutCache(t *testing.T) {
	cfg := workspace(t)
	require.NoError(t, os.Remove(cfg.CardsData))
	logger, _ := test.NewNullLogger()

	_, err := NewEnv(context.Background(), cfg, false, logger)
	assert.Error(t, err)

	_, err = NewEnv(context.Background(), cfg, true, logger)
	assert.Error(t, err, "refresh without cards_data_url")
}

func TestRunStopsAtFirstError(t *testing.T) {
	logger, _ := test.NewNullLogger()
	var ran []string
	step := func(name string, err error) Step {
		return Step{Name: name, Run: func(context.Context, *Env) error {
			ran = append(ran, name)
			return err
		}}
	}

	boom := errors.New("boom")
	err := NewRunner(&Env{Log: logger}, []Step{
		step("one", nil),
		step("two", boom),
		step("three", nil),
	}).Run(context.Background())

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "step two")
	assert.Equal(t, []string{"one", "two"}, ran)
}

func TestRunHonoursCancellation(t *testing.T) {
	logger, _ := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewRunner(&Env{Log: logger}, []Step{{Name: "one", Run: func(context.Context, *Env) error {
		called = true
		return nil
	}}}).Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
