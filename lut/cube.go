package lut

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrMissingSize is returned when a .cube file has no LUT_3D_SIZE line.
	ErrMissingSize = errors.New("lut: missing LUT_3D_SIZE")

	// ErrUnsupported is returned for valid .cube features this package does not handle.
	ErrUnsupported = errors.New("lut: unsupported cube feature")
)

// Cube is a parsed .cube file.
type Cube struct {
	Title     string
	DomainMin [3]float64
	DomainMax [3]float64
	Grid      *Grid
}

// Load parses the .cube file located at path.
func Load(path string) (*Cube, error) {
	f, e := os.Open(path)
	if e != nil {
		return nil, e
	}
	defer f.Close()

	c, e := Parse(f)
	if e != nil {
		return nil, fmt.Errorf("%s: %w", path, e)
	}

	return c, nil
}

// Parse reads a 3D .cube table. Data values are clamped to [0, 1] and scaled
// to 8 bits. A declared size that disagrees with the number of data rows fails
// with ErrSizeMismatch.
func Parse(r io.Reader) (*Cube, error) {
	c := &Cube{DomainMax: [3]float64{1, 1, 1}}
	n, sized := 0, false
	samples := make([]uint8, 0)

	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		text := strings.TrimSpace(s.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		switch fields[0] {
		case "TITLE":
			c.Title = strings.Trim(strings.TrimSpace(strings.TrimPrefix(text, "TITLE")), `"`)
		case "LUT_3D_SIZE":
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: malformed LUT_3D_SIZE", line)
			}
			v, e := strconv.Atoi(fields[1])
			if e != nil {
				return nil, fmt.Errorf("line %d: %w", line, e)
			}
			n, sized = v, true
			if n > 0 && n <= 256 {
				samples = make([]uint8, 0, n*n*n*3)
			}
		case "LUT_1D_SIZE":
			return nil, fmt.Errorf("line %d: 1D tables: %w", line, ErrUnsupported)
		case "DOMAIN_MIN", "DOMAIN_MAX":
			v, e := triple(fields[1:])
			if e != nil {
				return nil, fmt.Errorf("line %d: %w", line, e)
			}
			if fields[0] == "DOMAIN_MIN" {
				c.DomainMin = v
			} else {
				c.DomainMax = v
			}
		case "LUT_3D_INPUT_RANGE":
			// only emitted by some Resolve exports; the default range is assumed
		default:
			v, e := triple(fields)
			if e != nil {
				return nil, fmt.Errorf("line %d: %w", line, e)
			}
			for _, f := range v {
				samples = append(samples, scale8(f))
			}
		}
	}
	if e := s.Err(); e != nil {
		return nil, e
	}

	if !sized {
		return nil, ErrMissingSize
	}
	if c.DomainMin != [3]float64{0, 0, 0} || c.DomainMax != [3]float64{1, 1, 1} {
		return nil, fmt.Errorf("domain %v..%v: %w", c.DomainMin, c.DomainMax, ErrUnsupported)
	}

	g, e := Build(n, samples)
	if e != nil {
		return nil, e
	}
	c.Grid = g

	return c, nil
}

// Write encodes g as a .cube file.
func Write(w io.Writer, title string, g *Grid) error {
	b := bufio.NewWriter(w)

	if title != "" {
		fmt.Fprintf(b, "TITLE \"%s\"\n", title)
	}
	fmt.Fprintf(b, "LUT_3D_SIZE %d\n", g.size)
	fmt.Fprintln(b, "DOMAIN_MIN 0.0 0.0 0.0")
	fmt.Fprintln(b, "DOMAIN_MAX 1.0 1.0 1.0")

	for i := 0; i < len(g.samples); i += 3 {
		fmt.Fprintf(b, "%.6f %.6f %.6f\n",
			float64(g.samples[i])/255,
			float64(g.samples[i+1])/255,
			float64(g.samples[i+2])/255,
		)
	}

	return b.Flush()
}

func triple(fields []string) ([3]float64, error) {
	var v [3]float64
	if len(fields) != 3 {
		return v, fmt.Errorf("expected 3 values, got %d", len(fields))
	}
	for i, f := range fields {
		x, e := strconv.ParseFloat(f, 64)
		if e != nil {
			return v, e
		}
		v[i] = x
	}
	return v, nil
}

func scale8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
