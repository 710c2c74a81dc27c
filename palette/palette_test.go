package palette

import (
	"image"
	"image/color"
	"testing"
)

func TestDeltaE(t *testing.T) {
	black := color.NRGBA{0, 0, 0, 255}
	white := color.NRGBA{255, 255, 255, 255}

	if d := DeltaE(black, black); d != 0 {
		t.Errorf("DeltaE(black, black) = %v, want 0", d)
	}
	if d := DeltaE(black, white); d < 90 {
		t.Errorf("DeltaE(black, white) = %v, want about 100", d)
	}
}

func TestMeanDeltaE(t *testing.T) {
	before := []uint8{
		10, 20, 30, 255,
		200, 100, 50, 255,
		0, 0, 0, 0,
	}

	s, err := MeanDeltaE(before, before)
	if err != nil {
		t.Fatalf("MeanDeltaE: %v", err)
	}
	if s.Mean != 0 || s.Changed != 0 || s.Pixels != 2 {
		t.Errorf("identical buffers: %+v", s)
	}

	after := append([]uint8(nil), before...)
	after[4], after[8] = 0, 255 // the transparent pixel does not count
	s, err = MeanDeltaE(before, after)
	if err != nil {
		t.Fatalf("MeanDeltaE: %v", err)
	}
	if s.Changed != 1 || s.Mean <= 0 || s.Max < s.Mean {
		t.Errorf("changed buffers: %+v", s)
	}

	if _, err := MeanDeltaE(before, before[:8]); err == nil {
		t.Error("expected an error for buffers of different length")
	}
}

func TestDominant(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := color.NRGBA{220, 40, 40, 255}
			if x >= 6 {
				c = color.NRGBA{20, 40, 220, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}

	cvs, err := Dominant(img, 2)
	if err != nil {
		t.Fatalf("Dominant: %v", err)
	}
	if len(cvs) == 0 || len(cvs) > 2 {
		t.Fatalf("got %d colors, want 1 or 2", len(cvs))
	}
	if cvs[0].Share < 0.5 {
		t.Errorf("top share %v, want at least half", cvs[0].Share)
	}
	if cvs[0].RGB.R < cvs[0].RGB.B {
		t.Errorf("top color %v is not the red majority", cvs[0].RGB)
	}

	if _, err := Dominant(img, 0); err == nil {
		t.Error("expected an error for a zero palette size")
	}
}
