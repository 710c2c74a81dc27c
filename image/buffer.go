package image

import (
	"fmt"
	"image"
	"image/draw"
)

// Buffer is an interleaved, non-premultiplied RGBA pixel buffer in row-major order.
type Buffer struct {
	Width, Height int
	Pix           []uint8
}

// Pixels copies img into a new Buffer.
func Pixels(img image.Image) *Buffer {
	b := img.Bounds()
	o := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	// drawing would premultiply, losing the color of transparent pixels
	if n, ok := img.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			i := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(o.Pix[y*o.Stride:(y+1)*o.Stride], n.Pix[i:i+b.Dx()*4])
		}
		return &Buffer{Width: b.Dx(), Height: b.Dy(), Pix: o.Pix}
	}

	draw.Draw(o, o.Bounds(), img, b.Min, draw.Src)

	return &Buffer{Width: b.Dx(), Height: b.Dy(), Pix: o.Pix}
}

// Image wraps the buffer as an *image.NRGBA without copying.
func (b *Buffer) Image() (*image.NRGBA, error) {
	if len(b.Pix) != b.Width*b.Height*4 {
		return nil, fmt.Errorf("buffer holds %d bytes, %dx%d needs %d", len(b.Pix), b.Width, b.Height, b.Width*b.Height*4)
	}

	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}, nil
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	p := make([]uint8, len(b.Pix))
	copy(p, b.Pix)
	return &Buffer{Width: b.Width, Height: b.Height, Pix: p}
}
