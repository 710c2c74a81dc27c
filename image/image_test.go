package image

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

func checker() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			c := color.NRGBA{200, 10, 30, 255}
			if (x+y)%2 == 0 {
				c = color.NRGBA{0, 90, 255, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	img.SetNRGBA(3, 2, color.NRGBA{1, 2, 3, 0})
	return img
}

func TestPixelsImage(t *testing.T) {
	src := checker()
	b := Pixels(src)
	if b.Width != 4 || b.Height != 3 || len(b.Pix) != 48 {
		t.Fatalf("buffer %dx%d with %d bytes", b.Width, b.Height, len(b.Pix))
	}

	img, err := b.Image()
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if got, want := img.NRGBAAt(x, y), src.NRGBAAt(x, y); got != want {
				t.Errorf("(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}

	b.Pix = b.Pix[:40]
	if _, err := b.Image(); err == nil {
		t.Error("expected an error for a short buffer")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checker.png")
	if err := Save(path, checker(), 90); err != nil {
		t.Fatalf("Save: %v", err)
	}

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := Pixels(img)
	want := Pixels(checker())
	for i := range want.Pix {
		if got.Pix[i] != want.Pix[i] {
			t.Fatalf("byte %d = %d, want %d", i, got.Pix[i], want.Pix[i])
		}
	}

	if err := Save(filepath.Join(t.TempDir(), "x.gif"), checker(), 90); err == nil {
		t.Error("expected an error for an unsupported extension")
	}
}

func TestRankColors(t *testing.T) {
	ranked := RankColors(GetColors(Pixels(checker())))
	if len(ranked) != 2 {
		t.Fatalf("got %d colors, want 2 (transparent pixels skipped)", len(ranked))
	}
	if ranked[0].Color != (color.NRGBA{0, 90, 255, 255}) || ranked[0].Count != 6 {
		t.Errorf("top color %+v", ranked[0])
	}
	if ranked[1].Count != 5 {
		t.Errorf("second color count %d, want 5", ranked[1].Count)
	}
}

func TestClone(t *testing.T) {
	b := Pixels(checker())
	c := b.Clone()
	c.Pix[0] = 77
	if b.Pix[0] == 77 {
		t.Error("Clone shares its pixels")
	}
}
