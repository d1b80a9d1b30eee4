package compose

import (
	"fmt"
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/arcanaland/cardgen/internal/config"
)

// Profile converts a finished card into the output color space.
type Profile interface {
	Convert(img *image.NRGBA) *image.NRGBA
}

// ParseProfile maps a config color_profile value to a Profile.
func ParseProfile(name string) (Profile, error) {
	switch name {
	case config.ProfileAdobeRGB, "":
		return NewAdobeRGB(), nil
	case config.ProfileNone:
		return Identity{}, nil
	default:
		return nil, fmt.Errorf("unsupported color profile: %s", name)
	}
}

// Identity leaves pixels untouched.
type Identity struct{}

func (Identity) Convert(img *image.NRGBA) *image.NRGBA { return img }

// adobeToXYZ is the Adobe RGB (1998) primaries matrix, D65 white.
var adobeToXYZ = [3][3]float64{
	{0.5767309, 0.1855540, 0.1881852},
	{0.2973769, 0.6273491, 0.0752741},
	{0.0270343, 0.0706872, 0.9911085},
}

const adobeGamma = 563.0 / 256.0

// AdobeRGB reinterprets pixels as Adobe RGB (1998) and converts them to sRGB.
type AdobeRGB struct {
	linear [256]float64
}

func NewAdobeRGB() *AdobeRGB {
	p := &AdobeRGB{}
	for i := range p.linear {
		p.linear[i] = math.Pow(float64(i)/255, adobeGamma)
	}
	return p
}

// Convert returns a new image; alpha is carried over unchanged.
func (p *AdobeRGB) Convert(img *image.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())
	seen := make(map[[3]uint8][3]uint8)

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		src := img.Pix[img.PixOffset(b.Min.X, y):]
		dst := out.Pix[out.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			i := x * 4
			in := [3]uint8{src[i], src[i+1], src[i+2]}
			conv, ok := seen[in]
			if !ok {
				conv = p.convert(in)
				seen[in] = conv
			}
			dst[i], dst[i+1], dst[i+2], dst[i+3] = conv[0], conv[1], conv[2], src[i+3]
		}
	}
	return out
}

func (p *AdobeRGB) convert(in [3]uint8) [3]uint8 {
	r, g, b := p.linear[in[0]], p.linear[in[1]], p.linear[in[2]]
	m := adobeToXYZ
	x := m[0][0]*r + m[0][1]*g + m[0][2]*b
	y := m[1][0]*r + m[1][1]*g + m[1][2]*b
	z := m[2][0]*r + m[2][1]*g + m[2][2]*b

	r8, g8, b8 := colorful.Xyz(x, y, z).Clamped().RGB255()
	return [3]uint8{r8, g8, b8}
}
