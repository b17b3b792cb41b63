package skin

// convert.go: legacy (64x32) to modern (64x64) skin layout

import (
	"fmt"
	"image"
)

// patch positions in scale 1 pixels
type patch struct {
	from image.Point
	to   image.Point
}

var (
	// tops and bottoms of the leg and arm, 4x4
	limbPatches = []patch{
		{image.Pt(4, 16), image.Pt(20, 48)},  // leg top
		{image.Pt(8, 16), image.Pt(24, 48)},  // leg bottom
		{image.Pt(44, 16), image.Pt(36, 48)}, // arm top
		{image.Pt(48, 16), image.Pt(40, 48)}, // arm bottom
	}

	// sides of the leg and arm, 16x12
	sidePatches = []patch{
		{image.Pt(0, 20), image.Pt(16, 52)},
		{image.Pt(40, 20), image.Pt(32, 52)},
	}
)

// ToModern builds the square layout out of a legacy skin. the left leg and arm,
// which old skins do not have, are mirrored from the right ones
func ToModern(src *image.NRGBA) (*image.NRGBA, error) {
	b := src.Bounds()
	if !IsLegacy(b.Dx(), b.Dy()) {
		return nil, fmt.Errorf("%w: %dx%d is not a legacy skin", ErrLayout, b.Dx(), b.Dy())
	}

	s := Scale(b.Dx())
	out := image.NewNRGBA(image.Rect(0, 0, Base*s, Base*s))
	blit(out, image.Point{}, src, b)

	for _, p := range limbPatches {
		if err := copyFlipped(out, p.from.Mul(s), image.Pt(4*s, 4*s), p.to.Mul(s)); err != nil {
			return nil, err
		}
	}
	for _, p := range sidePatches {
		if err := copyRotatedFlipped(out, p.from.Mul(s), image.Pt(16*s, 12*s), p.to.Mul(s), 4*s); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Normalize returns src in the modern layout, converting legacy skins.
// src is returned as is when it already is modern
func Normalize(src *image.NRGBA) (*image.NRGBA, error) {
	b := src.Bounds()
	switch {
	case IsLegacy(b.Dx(), b.Dy()):
		return ToModern(src)
	case IsModern(b.Dx(), b.Dy()):
		return src, nil
	default:
		return nil, fmt.Errorf("%w: %dx%d is neither a legacy nor a modern skin", ErrLayout, b.Dx(), b.Dy())
	}
}
