package compose

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

const (
	championScale  = 1.1
	championOffset = 50
)

// center pastes art in the middle of a transparent canvas of the given size.
// Art larger than the canvas is clipped evenly on both sides.
func center(art image.Image, size image.Point) *image.NRGBA {
	canvas := imaging.New(size.X, size.Y, color.NRGBA{})
	ab := art.Bounds()
	pos := image.Pt((size.X-ab.Dx())/2, (size.Y-ab.Dy())/2)
	return imaging.Paste(canvas, art, pos)
}

// Stack alpha-composites layers bottom to top onto a transparent canvas.
func Stack(size image.Point, layers ...image.Image) *image.NRGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	for _, l := range layers {
		draw.Draw(canvas, canvas.Bounds(), l, l.Bounds().Min, draw.Over)
	}
	return imaging.Clone(canvas)
}

// ApplyMask keeps src only where mask is opaque.
func ApplyMask(src *image.NRGBA, mask image.Image) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds())
	draw.DrawMask(dst, dst.Bounds(), src, src.Bounds().Min, mask, mask.Bounds().Min, draw.Over)
	return dst
}

// zoom scales img up by championScale, crops the center back to the
// original size and shifts the result down by championOffset pixels.
func zoom(img *image.NRGBA) *image.NRGBA {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	newW := int(float64(w) * championScale)
	newH := int(float64(h) * championScale)

	scaled := image.NewNRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	cropX := (newW - w) / 2
	cropY := (newH - h) / 2
	cropped := imaging.Crop(scaled, image.Rect(cropX, cropY, cropX+w, cropY+h))

	return offsetWrap(cropped, championOffset)
}

// offsetWrap shifts rows down by dy; rows pushed off the bottom reappear at the top.
func offsetWrap(img *image.NRGBA, dy int) *image.NRGBA {
	b := img.Bounds()
	h := b.Dy()
	out := image.NewNRGBA(b)
	if h == 0 {
		return out
	}
	rowLen := b.Dx() * 4

	for y := 0; y < h; y++ {
		ty := ((y+dy)%h + h) % h
		src := img.Pix[y*img.Stride : y*img.Stride+rowLen]
		copy(out.Pix[ty*out.Stride:ty*out.Stride+rowLen], src)
	}
	return out
}
