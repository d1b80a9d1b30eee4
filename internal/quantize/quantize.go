// Package quantize reduces finished cards to palette PNGs.
package quantize

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/sirupsen/logrus"

	"github.com/arcanaland/cardgen/internal/card"
	"github.com/arcanaland/cardgen/internal/config"
)

// MaxColors is the palette size of a PNG8 image.
const MaxColors = 256

// Quantizer writes a reduced-color copy of src to dst.
type Quantizer interface {
	Quantize(ctx context.Context, src, dst string) error
}

// New returns the quantizer selected in cfg.
func New(cfg *config.Config) (Quantizer, error) {
	switch cfg.Quantizer {
	case config.QuantizerPngquant, "":
		return &Pngquant{Bin: cfg.PngquantBin}, nil
	case config.QuantizerBuiltin:
		return MedianCut{}, nil
	default:
		return nil, fmt.Errorf("unsupported quantizer: %s", cfg.Quantizer)
	}
}

// Pngquant runs the external pngquant tool.
type Pngquant struct {
	Bin string
}

func (p *Pngquant) Quantize(ctx context.Context, src, dst string) error {
	bin := p.Bin
	if bin == "" {
		bin = "pngquant"
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "--force", "--output", dst, "--", src)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pngquant %s: %w: %s", src, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return nil
}

// MedianCut quantizes in process. Pixels are mapped to the nearest palette
// entry without dithering, so flat regions keep their exact color.
type MedianCut struct{}

func (MedianCut) Quantize(_ context.Context, src, dst string) error {
	img, err := imaging.Open(src)
	if err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := png.Encode(out, Paletted(img)); err != nil {
		return fmt.Errorf("error encoding %s: %w", dst, err)
	}
	return out.Close()
}

// Paletted converts img to a paletted image of at most MaxColors colors.
// Images with transparent pixels keep one palette slot for full transparency.
func Paletted(img image.Image) *image.Paletted {
	n := MaxColors
	transparent := hasTransparency(img)
	if transparent {
		n--
	}

	q := quantize.MedianCutQuantizer{}
	palette := q.Quantize(make(color.Palette, 0, n), img)
	if transparent || len(palette) == 0 {
		palette = append(palette, color.NRGBA{})
	}

	b := img.Bounds()
	pal := image.NewPaletted(b, palette)
	draw.Draw(pal, b, img, b.Min, draw.Src)
	return pal
}

// Directory quantizes <key>.png from srcDir into dstDir for every card.
// Missing source files are logged and skipped.
func Directory(ctx context.Context, q Quantizer, cards []card.Card, srcDir, dstDir string, log logrus.FieldLogger) error {
	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	for _, c := range cards {
		src := filepath.Join(srcDir, c.Key+".png")
		dst := filepath.Join(dstDir, c.Key+".png")
		entry := log.WithField("card", c.Key)

		before, err := os.Stat(src)
		if os.IsNotExist(err) {
			entry.WithField("path", src).Error("cannot quantize, source missing")
			continue
		}
		if err != nil {
			return err
		}

		if err := q.Quantize(ctx, src, dst); err != nil {
			return err
		}

		fields := logrus.Fields{"path": dst, "before": humanize.Bytes(uint64(before.Size()))}
		if after, err := os.Stat(dst); err == nil {
			fields["after"] = humanize.Bytes(uint64(after.Size()))
		}
		entry.WithFields(fields).Info("card quantized")
	}

	return nil
}

func hasTransparency(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a == 0 {
				return true
			}
		}
	}
	return false
}
