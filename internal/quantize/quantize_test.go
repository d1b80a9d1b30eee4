package quantize

import (
	"context"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/cardgen/internal/card"
	"github.com/arcanaland/cardgen/internal/config"
)

// gradientCard has far more than 256 colors with a few flat blocks on top.
func gradientCard(w, h int) *image.NRGBA {
	img := imaging.New(w, h, color.NRGBA{})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8((x * y) % 256), A: 255})
		}
	}
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 30, B: 30, A: 255})
			img.SetNRGBA(w-1-x, h-1-y, color.NRGBA{R: 20, G: 40, B: 220, A: 255})
		}
	}
	return img
}

func distinctColors(img image.Image) int {
	seen := map[color.NRGBA]bool{}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			seen[color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)] = true
		}
	}
	return len(seen)
}

func TestPalettedLimitsColors(t *testing.T) {
	src := gradientCard(200, 240)
	require.Greater(t, distinctColors(src), MaxColors)

	out := Paletted(src)
	assert.LessOrEqual(t, len(out.Palette), MaxColors)
	assert.LessOrEqual(t, distinctColors(out), MaxColors)
	assert.Equal(t, src.Bounds(), out.Bounds())
}

func TestPalettedKeepsSolidColors(t *testing.T) {
	src := imaging.New(64, 64, color.NRGBA{R: 10, G: 120, B: 60, A: 255})
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 240, G: 200, B: 0, A: 255})
		}
	}

	out := Paletted(src)
	assert.Equal(t, color.NRGBA{R: 240, G: 200, B: 0, A: 255}, color.NRGBAModel.Convert(out.At(10, 10)))
	assert.Equal(t, color.NRGBA{R: 10, G: 120, B: 60, A: 255}, color.NRGBAModel.Convert(out.At(10, 50)))
}

func TestPalettedKeepsTransparency(t *testing.T) {
	src := gradientCard(120, 140)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			src.SetNRGBA(x, y, color.NRGBA{})
		}
	}

	out := Paletted(src)
	assert.LessOrEqual(t, len(out.Palette), MaxColors)
	_, _, _, a := out.At(0, 0).RGBA()
	assert.Zero(t, a)
	_, _, _, a = out.At(60, 70).RGBA()
	assert.NotZero(t, a)
}

func TestDirectoryWithMedianCut(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := filepath.Join(t.TempDir(), "png8")
	require.NoError(t, imaging.Save(gradientCard(120, 140), filepath.Join(srcDir, "knight.png")))

	logger, hook := test.NewNullLogger()
	cards := []card.Card{{Key: "knight"}, {Key: "archers"}}
	require.NoError(t, Directory(context.Background(), MedianCut{}, cards, srcDir, dstDir, logger))

	f, err := os.Open(filepath.Join(dstDir, "knight.png"))
	require.NoError(t, err)
	defer f.Close()
	img, _, err := image.Decode(f)
	require.NoError(t, err)
	_, ok := img.(*image.Paletted)
	assert.True(t, ok, "png8 output decodes as paletted")
	assert.LessOrEqual(t, distinctColors(img), MaxColors)

	var errs []*logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			errs = append(errs, e)
		}
	}
	require.Len(t, errs, 1)
	assert.Equal(t, "archers", errs[0].Data["card"])
}

func TestPngquantInvokesBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stub needs a unix shell")
	}

	dir := t.TempDir()
	bin := filepath.Join(dir, "pngquant")
	// --force --output <dst> -- <src>
	script := "#!/bin/sh\n[ \"$1\" = --force ] && [ \"$2\" = --output ] && [ \"$4\" = -- ] || exit 2\ncp \"$5\" \"$3\"\n"
	require.NoError(t, os.WriteFile(bin, []byte(script), 0755))

	src := filepath.Join(dir, "knight.png")
	dst := filepath.Join(dir, "out.png")
	require.NoError(t, os.WriteFile(src, []byte("png"), 0644))

	q := &Pngquant{Bin: bin}
	require.NoError(t, q.Quantize(context.Background(), src, dst))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	q = &Pngquant{Bin: filepath.Join(dir, "missing-pngquant")}
	assert.Error(t, q.Quantize(context.Background(), src, dst))
}

func TestNewFromConfig(t *testing.T) {
	q, err := New(&config.Config{Quantizer: config.QuantizerBuiltin})
	require.NoError(t, err)
	assert.IsType(t, MedianCut{}, q)

	q, err = New(&config.Config{Quantizer: config.QuantizerPngquant, PngquantBin: "/opt/pngquant"})
	require.NoError(t, err)
	assert.Equal(t, &Pngquant{Bin: "/opt/pngquant"}, q)

	_, err = New(&config.Config{Quantizer: "magic"})
	assert.Error(t, err)
}
