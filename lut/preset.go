package lut

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownPreset is returned by Preset for names it does not know.
var ErrUnknownPreset = errors.New("lut: unknown preset")

// presets map a normalized input color to an output color.
var presets = map[string]func(c colorful.Color) colorful.Color{
	"identity": func(c colorful.Color) colorful.Color {
		return c
	},
	"grayscale": func(c colorful.Color) colorful.Color {
		l, _, _ := c.Lab()
		return colorful.Lab(l, 0, 0)
	},
	"invert": func(c colorful.Color) colorful.Color {
		return colorful.Color{R: 1 - c.R, G: 1 - c.G, B: 1 - c.B}
	},
	"warm": func(c colorful.Color) colorful.Color {
		return colorful.Color{R: c.R * 1.08, G: c.G * 1.02, B: c.B * 0.9}
	},
	"cool": func(c colorful.Color) colorful.Color {
		return colorful.Color{R: c.R * 0.9, G: c.G * 1.02, B: c.B * 1.08}
	},
	"vivid": func(c colorful.Color) colorful.Color {
		h, s, l := c.Hsl()
		return colorful.Hsl(h, math.Min(1, s*1.3), l)
	},
}

// Presets returns the names accepted by Preset.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for k := range presets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Identity returns the grid of edge length n that maps every color to itself.
func Identity(n int) (*Grid, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrEdgeLength, n)
	}

	samples := make([]uint8, 0, n*n*n*3)
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				samples = append(samples, axis8(x, n), axis8(y, n), axis8(z, n))
			}
		}
	}

	return Build(n, samples)
}

// Preset generates the named grid with edge length n.
func Preset(name string, n int) (*Grid, error) {
	f, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	if name == "identity" {
		return Identity(n)
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrEdgeLength, n)
	}

	samples := make([]uint8, 0, n*n*n*3)
	d := float64(n - 1)
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				c := f(colorful.Color{R: float64(x) / d, G: float64(y) / d, B: float64(z) / d})
				r, g, b := c.Clamped().RGB255()
				samples = append(samples, r, g, b)
			}
		}
	}

	return Build(n, samples)
}

func axis8(i, n int) uint8 {
	return uint8(math.Round(float64(i) * 255 / float64(n-1)))
}
