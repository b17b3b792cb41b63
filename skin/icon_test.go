package skin

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestGenIcon(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}

	for _, s := range []int{1, 2, 4} {
		icon, err := GenIcon(solid(Base*s, Base*s, red))
		if err != nil {
			t.Fatalf("scale %d: %v", s, err)
		}

		o, err := Outline()
		if err != nil {
			t.Fatal(err)
		}
		if icon.Bounds() != o.Bounds() {
			t.Fatalf("scale %d: icon is %v, template is %v", s, icon.Bounds(), o.Bounds())
		}

		// the face covers 12..52 completely
		for _, p := range []image.Point{{12, 12}, {32, 32}, {51, 51}} {
			if c := icon.NRGBAAt(p.X, p.Y); c != red {
				t.Fatalf("scale %d: pixel %v is %v", s, p, c)
			}
		}
		// the template is left alone around it
		if icon.NRGBAAt(0, 0) != o.NRGBAAt(0, 0) {
			t.Fatalf("scale %d: corner of the template changed", s)
		}
	}
}

func TestGenIconErrors(t *testing.T) {
	tests := map[string]struct {
		src *image.NRGBA
		err error
	}{
		"legacy":      {pattern(64, 32), ErrNotSquare},
		"too_small":   {pattern(32, 32), ErrLayout},
		"transparent": {solid(64, 64, color.NRGBA{}), ErrNoPalette},
	}

	for name, test := range tests {
		if _, err := GenIcon(test.src); !errors.Is(err, test.err) {
			t.Fatalf("%s: expected %q, got %v", name, test.err, err)
		}
	}
}

func TestGenPortrait(t *testing.T) {
	src := solid(128, 128, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	p, err := GenPortrait(src, 96)
	if err != nil {
		t.Fatal(err)
	}
	if b := p.Bounds(); b.Dx() != 96 || b.Dy() != 96 {
		t.Fatalf("got %v", b)
	}
	if c := p.NRGBAAt(50, 50); c.R != GradeValue(255) || c.A != 255 {
		t.Fatalf("portrait not graded: %v", c)
	}

	if _, err := GenPortrait(pattern(64, 32), 96); !errors.Is(err, ErrNotSquare) {
		t.Fatalf("expected %q, got %v", ErrNotSquare, err)
	}
}
