package skin

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestQuantize(t *testing.T) {
	img := pattern(40, 40)
	orig := Clone(img)

	p, err := Quantize(img, PaletteSize, PaletteQuality)
	if err != nil {
		t.Fatal(err)
	}
	if len(p) == 0 || len(p) > PaletteSize {
		t.Fatalf("got %d palette entries", len(p))
	}

	entries := make(map[[3]uint8]bool, len(p))
	for _, c := range p {
		entries[[3]uint8{c.R, c.G, c.B}] = true
	}

	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			c := img.NRGBAAt(x, y)
			if !entries[[3]uint8{c.R, c.G, c.B}] {
				t.Fatalf("pixel %d,%d (%v) is not a palette entry", x, y, c)
			}
			if c.A != orig.NRGBAAt(x, y).A {
				t.Fatalf("pixel %d,%d alpha changed", x, y)
			}
		}
	}
}

func TestExtractPaletteFewColors(t *testing.T) {
	img := solid(40, 40, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
	for x := 0; x < 20; x++ {
		img.SetNRGBA(x, 0, color.NRGBA{R: 10, G: 10, B: 200, A: 255})
	}

	p, err := ExtractPalette(img, PaletteSize, 1)
	if err != nil {
		t.Fatal(err)
	}

	want := []color.NRGBA{{R: 10, G: 10, B: 200, A: 255}, {R: 200, G: 10, B: 10, A: 255}}
	if len(p) != len(want) {
		t.Fatalf("got %v, want %v", p, want)
	}
	for i := range want {
		if p[i] != want[i] {
			t.Fatalf("got %v, want %v", p, want)
		}
	}
}

func TestExtractPaletteEmpty(t *testing.T) {
	tests := map[string]color.NRGBA{
		"transparent": {R: 90, G: 20, B: 20, A: 0},
		"white":       {R: 255, G: 255, B: 255, A: 255},
	}

	for name, c := range tests {
		if _, err := ExtractPalette(solid(40, 40, c), PaletteSize, PaletteQuality); !errors.Is(err, ErrNoPalette) {
			t.Fatalf("%s: expected %q, got %v", name, ErrNoPalette, err)
		}
	}

	if err := Remap(solid(2, 2, color.NRGBA{}), nil); !errors.Is(err, ErrNoPalette) {
		t.Fatalf("expected %q, got %v", ErrNoPalette, err)
	}
}

func TestNearest(t *testing.T) {
	p := []color.NRGBA{
		{R: 0, G: 0, B: 0},
		{R: 100, G: 0, B: 0},
		{R: 0, G: 100, B: 0},
		{R: 100, G: 0, B: 0},
	}

	tests := map[string]struct {
		c    color.NRGBA
		want int
	}{
		"exact":     {color.NRGBA{R: 0, G: 100, B: 0}, 2},
		"closest":   {color.NRGBA{R: 90, G: 5, B: 5}, 1},
		"tie_first": {color.NRGBA{R: 50, G: 0, B: 0}, 0},
		"duplicate": {color.NRGBA{R: 100, G: 0, B: 0}, 1},
	}

	for name, test := range tests {
		if got := Nearest(p, test.c); got != test.want {
			t.Fatalf("%s: got %d, want %d", name, got, test.want)
		}
	}
}

func TestExtractPaletteKeepsTones(t *testing.T) {
	// twelve bands of skin and blue tones, none of them web safe
	reds := []uint8{20, 24, 60, 96, 100, 140, 170, 174, 200, 225, 229, 245}
	img := image.NewNRGBA(image.Rect(0, 0, 4*len(reds), 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 4*len(reds); x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: reds[x/4], G: 100, B: 70, A: 255})
		}
	}

	p, err := ExtractPalette(img, PaletteSize, PaletteQuality)
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != PaletteSize {
		t.Fatalf("got %d palette entries, want %d", len(p), PaletteSize)
	}

	for _, c := range p {
		if c.G != 100 || c.B != 70 {
			t.Fatalf("entry %v drifted off the sampled tones", c)
		}
		near := false
		for _, r := range reds {
			if d := int(c.R) - int(r); d >= -2 && d <= 2 {
				near = true
				break
			}
		}
		if !near {
			t.Fatalf("entry %v is not close to any sampled color", c)
		}
	}
}
