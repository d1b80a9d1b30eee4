package compose

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/arcanaland/cardgen/internal/card"
)

// Assets holds the frames, masks and backgrounds of one variant.
type Assets struct {
	dir    string
	images map[string]*image.NRGBA
	size   image.Point
}

// LoadAssets opens every asset variant v needs from dir.
// The output size is taken from the generic frame.
func LoadAssets(dir string, v card.Variant) (*Assets, error) {
	a := &Assets{
		dir:    dir,
		images: make(map[string]*image.NRGBA),
	}

	for _, name := range AssetNames(v) {
		img, err := a.open(name)
		if err != nil {
			return nil, err
		}
		a.images[name] = img
	}

	frame := a.images[TreatmentFor(card.Commons, v.Gold).Frame]
	a.size = frame.Bounds().Size()

	return a, nil
}

// Size is the pixel size of every finished card.
func (a *Assets) Size() image.Point {
	return a.size
}

// Get returns a preloaded asset, or opens it from disk (elixir badges).
func (a *Assets) Get(name string) (*image.NRGBA, error) {
	if img, ok := a.images[name]; ok {
		return img, nil
	}
	return a.open(name)
}

// Path returns the file an asset is read from.
func (a *Assets) Path(name string) string {
	return AssetPath(a.dir, name)
}

// AssetPath returns the file an asset name is read from in dir.
func AssetPath(dir, name string) string {
	return filepath.Join(dir, name+".png")
}

func (a *Assets) open(name string) (*image.NRGBA, error) {
	img, err := imaging.Open(a.Path(name))
	if err != nil {
		return nil, fmt.Errorf("error opening asset %s: %w", name, err)
	}
	return imaging.Clone(img), nil
}
