package lut

import (
	"errors"
	"fmt"
)

var (
	// ErrSizeMismatch is returned by Build when the number of samples does not
	// match the declared edge length.
	ErrSizeMismatch = errors.New("lut: sample count does not match edge length")

	// ErrEdgeLength is returned by Build for grids with fewer than 2 samples per axis.
	ErrEdgeLength = errors.New("lut: edge length must be at least 2")
)

// Grid is an immutable cubic 3D lookup table. Samples are RGB triples laid out
// with the red axis varying fastest, then green, then blue.
type Grid struct {
	size    int
	samples []uint8
}

// OutOfRangeError reports a lookup outside of [0, N-1] on some axis.
type OutOfRangeError struct {
	X, Y, Z int
	Size    int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("lut: sample (%d, %d, %d) outside of %d^3 grid", e.X, e.Y, e.Z, e.Size)
}

// Build creates a grid of edge length n from a flat sequence of n^3 RGB triples.
// The samples are copied, so the caller may reuse the slice.
func Build(n int, samples []uint8) (*Grid, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrEdgeLength, n)
	}
	if !cubic(n, len(samples)) {
		return nil, fmt.Errorf("%w: edge length %d needs %d^3*3 values, got %d", ErrSizeMismatch, n, n, len(samples))
	}

	s := make([]uint8, len(samples))
	copy(s, samples)

	return &Grid{size: n, samples: s}, nil
}

// EdgeLength returns the number of samples along one axis.
func (g *Grid) EdgeLength() int {
	return g.size
}

// Samples returns a copy of the flat sample sequence.
func (g *Grid) Samples() []uint8 {
	s := make([]uint8, len(g.samples))
	copy(s, g.samples)
	return s
}

// Sample returns the color stored at grid point (x, y, z). It panics with an
// *OutOfRangeError when any coordinate is outside [0, EdgeLength()-1].
func (g *Grid) Sample(x, y, z int) (r, gr, b uint8) {
	n := g.size
	if x < 0 || y < 0 || z < 0 || x >= n || y >= n || z >= n {
		panic(&OutOfRangeError{X: x, Y: y, Z: z, Size: n})
	}

	i := (x + y*n + z*n*n) * 3
	return g.samples[i], g.samples[i+1], g.samples[i+2]
}

// cubic reports whether count == n^3*3, dividing so that large n cannot overflow.
func cubic(n, count int) bool {
	if count%3 != 0 {
		return false
	}
	k := count / 3
	return k%n == 0 && (k/n)%n == 0 && k/n/n == n
}
