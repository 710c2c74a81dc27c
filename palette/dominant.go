package palette

import (
	"fmt"
	"image"
	"image/color"

	"github.com/esimov/colorquant"
	lutimage "github.com/mmuldo/lutter/image"
)

// ColorVol represents an RGB color and the share of sampled pixels it takes up in an image.
type ColorVol struct {
	RGB   color.NRGBA
	Count int
	Share float64
}

// Dominant returns up to num colors that best represent img, most common first.
func Dominant(img image.Image, num int) ([]ColorVol, error) {
	if num < 1 {
		return nil, fmt.Errorf("palette size must be positive, got %d", num)
	}

	// quantize image
	b := img.Bounds()
	o := image.NewNRGBA(image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y))
	colorquant.NoDither.Quantize(img, o, num, false, true)

	ranked := lutimage.RankColors(lutimage.GetColors(lutimage.Pixels(o)))
	total := 0
	for _, c := range ranked {
		total += c.Count
	}

	cvs := make([]ColorVol, 0, num)
	for i, c := range ranked {
		if i >= num {
			break
		}
		cvs = append(cvs, ColorVol{c.Color, c.Count, float64(c.Count) / float64(total)})
	}

	return cvs, nil
}
