package palette

import (
	"fmt"
	"image/color"

	"github.com/jkl1337/go-chromath"
	"github.com/jkl1337/go-chromath/deltae"
)

// Shift summarizes how far a LUT moved the colors of an image.
type Shift struct {
	Mean    float64 // mean CIEDE2000 over opaque pixels
	Max     float64
	Pixels  int // opaque pixels compared
	Changed int // pixels whose RGB differs at all
}

// MeanDeltaE compares two RGBA buffers of the same size pixel by pixel.
// Conversions are cached per distinct color, since graded images repeat them a lot.
func MeanDeltaE(before, after []uint8) (Shift, error) {
	var s Shift
	if len(before) != len(after) || len(before)%4 != 0 {
		return s, fmt.Errorf("cannot compare buffers of %d and %d bytes", len(before), len(after))
	}

	cache := make(map[color.NRGBA]chromath.Lab)
	lab := func(r, g, b uint8) chromath.Lab {
		k := color.NRGBA{r, g, b, 255}
		if l, ok := cache[k]; ok {
			return l
		}
		l := Lab(r, g, b)
		cache[k] = l
		return l
	}

	total := 0.0
	for i := 0; i < len(before); i += 4 {
		if before[i+3] == 0 {
			continue
		}
		s.Pixels++
		if before[i] == after[i] && before[i+1] == after[i+1] && before[i+2] == after[i+2] {
			continue
		}
		s.Changed++

		d := deltae.CIE2000(lab(before[i], before[i+1], before[i+2]), lab(after[i], after[i+1], after[i+2]), klch)
		total += d
		if d > s.Max {
			s.Max = d
		}
	}
	if s.Pixels > 0 {
		s.Mean = total / float64(s.Pixels)
	}

	return s, nil
}
