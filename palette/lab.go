package palette

import (
	"image/color"

	"github.com/jkl1337/go-chromath"
	"github.com/jkl1337/go-chromath/deltae"
)

var (
	// for RGB-to-Lab conversion
	targetIlluminant = &chromath.IlluminantRefD50
	rgb2Xyz          = chromath.NewRGBTransformer(
		&chromath.SpaceSRGB,
		&chromath.AdaptationBradford,
		targetIlluminant,
		&chromath.Scaler8bClamping,
		1.0,
		nil,
	)
	lab2Xyz = chromath.NewLabTransformer(targetIlluminant)
	klch    = &deltae.KLChDefault
)

// Lab converts an 8-bit sRGB color to CIE Lab under D50.
func Lab(r, g, b uint8) chromath.Lab {
	xyz := rgb2Xyz.Convert(chromath.RGB{float64(r), float64(g), float64(b)})
	return lab2Xyz.Invert(xyz)
}

// DeltaE returns the CIEDE2000 difference between two colors.
func DeltaE(c0, c1 color.NRGBA) float64 {
	return deltae.CIE2000(Lab(c0.R, c0.G, c0.B), Lab(c1.R, c1.G, c1.B), klch)
}
