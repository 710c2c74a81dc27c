package image

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// Load loads an image for use given a file path
func Load(path string) (image.Image, error) {
	f, e := os.Open(path)
	if e != nil {
		return nil, e
	}
	defer f.Close()

	i, _, e := image.Decode(f)
	if e != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, e)
	}

	return i, nil
}

// Save encodes an image to path, picking PNG or JPEG by file extension.
func Save(path string, img image.Image, quality int) error {
	f, e := os.Create(path)
	if e != nil {
		return e
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		e = jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	case ".png", "":
		e = png.Encode(f, img)
	default:
		e = fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}
	if e != nil {
		f.Close()
		return e
	}

	return f.Close()
}
