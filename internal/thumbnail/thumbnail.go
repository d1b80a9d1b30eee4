// Package thumbnail produces the smaller card sets from finished cards.
package thumbnail

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"github.com/sirupsen/logrus"

	"github.com/arcanaland/cardgen/internal/card"
)

// Fit scales img down so it fits within maxW x maxH, keeping its aspect
// ratio. Images already inside the bounds are returned unchanged.
func Fit(img image.Image, maxW, maxH uint) image.Image {
	return resize.Thumbnail(maxW, maxH, img, resize.Lanczos3)
}

// Directory writes a thumbnail of <key>.png from srcDir into dstDir for every
// card. Missing source files are logged and skipped.
func Directory(cards []card.Card, srcDir, dstDir string, maxW, maxH uint, log logrus.FieldLogger) error {
	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	for _, c := range cards {
		src := filepath.Join(srcDir, c.Key+".png")
		dst := filepath.Join(dstDir, c.Key+".png")
		entry := log.WithField("card", c.Key)

		img, err := imaging.Open(src)
		if os.IsNotExist(err) {
			entry.WithField("path", src).Error("cannot create thumbnail, source missing")
			continue
		}
		if err != nil {
			return fmt.Errorf("error opening %s: %w", src, err)
		}

		if err := imaging.Save(Fit(img, maxW, maxH), dst); err != nil {
			return fmt.Errorf("error saving %s: %w", dst, err)
		}
		entry.WithField("path", dst).Info("thumbnail created")
	}

	return nil
}
