// Package interp samples a lut.Grid with trilinear interpolation.
//
// Everything here is stateless. A single read-only grid may be shared by any
// number of goroutines calling TransformPixel at once.
package interp

import (
	"math"

	"github.com/mmuldo/lutter/lut"
)

type rgb [3]float64

// TransformPixel maps an 8-bit color through grid.
//
// Interpolation runs along red (x) first, then blue (z), then green (y). The
// nesting order is fixed because it decides rounding at cube edges.
func TransformPixel(r, g, b uint8, grid *lut.Grid) (uint8, uint8, uint8) {
	n := grid.EdgeLength()
	scale := float64(n-1) / 255

	x := float64(r) * scale
	y := float64(g) * scale
	z := float64(b) * scale

	x0, y0, z0 := int(math.Floor(x)), int(math.Floor(y)), int(math.Floor(z))
	// the top face collapses to a zero-width cell
	x1, y1, z1 := min(x0+1, n-1), min(y0+1, n-1), min(z0+1, n-1)

	xd := x - float64(x0)
	yd := y - float64(y0)
	zd := z - float64(z0)

	c000 := sample(grid, x0, y0, z0)
	c100 := sample(grid, x1, y0, z0)
	c001 := sample(grid, x0, y0, z1)
	c101 := sample(grid, x1, y0, z1)
	c010 := sample(grid, x0, y1, z0)
	c110 := sample(grid, x1, y1, z0)
	c011 := sample(grid, x0, y1, z1)
	c111 := sample(grid, x1, y1, z1)

	c00 := lerp(c000, c100, xd)
	c01 := lerp(c001, c101, xd)
	c0 := lerp(c00, c01, zd)

	c10 := lerp(c010, c110, xd)
	c11 := lerp(c011, c111, xd)
	c1 := lerp(c10, c11, zd)

	c := lerp(c0, c1, yd)

	return channel(c[0]), channel(c[1]), channel(c[2])
}

// TransformBuffer applies grid to every pixel of an interleaved RGBA buffer in
// place. Alpha is left untouched.
func TransformBuffer(pixels []uint8, grid *lut.Grid) {
	for i := 0; i+3 < len(pixels); i += 4 {
		pixels[i], pixels[i+1], pixels[i+2] = TransformPixel(pixels[i], pixels[i+1], pixels[i+2], grid)
	}
}

func sample(grid *lut.Grid, x, y, z int) rgb {
	r, g, b := grid.Sample(x, y, z)
	return rgb{float64(r), float64(g), float64(b)}
}

func lerp(a, b rgb, t float64) rgb {
	return rgb{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

// channel stores an interpolated value the way an 8-bit clamped array does:
// round half to even.
func channel(v float64) uint8 {
	return uint8(math.RoundToEven(v))
}
