package skin

import (
	"errors"
	"image"

	"golang.org/x/image/draw"
)

const (
	// Base is the width of a scale 1 skin; every layout dimension is a multiple of it
	Base = 64
)

var (
	ErrDecode      = errors.New("could not decode source image")
	ErrLayout      = errors.New("unexpected skin layout")
	ErrNotSquare   = errors.New("image is not square")
	ErrNoPalette   = errors.New("palette extraction yielded no colors")
	ErrOutOfBounds = errors.New("rectangle is outside of the image")
)

// IsLegacy reports whether a w x h image uses the old 2:1 layout
func IsLegacy(w, h int) bool {
	return w > 0 && w == h*2 && w%Base == 0
}

// IsModern reports whether a w x h image uses the square layout
func IsModern(w, h int) bool {
	return w > 0 && w == h && w%Base == 0
}

// Scale returns the integer scale factor of a skin of width w
func Scale(w int) int {
	return w / Base
}

// ToNRGBA returns a copy of im as *image.NRGBA with its origin at 0,0
func ToNRGBA(im image.Image) *image.NRGBA {
	b := im.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	// straight copy keeps non-premultiplied values intact
	if n, ok := im.(*image.NRGBA); ok {
		blit(out, image.Point{}, n, b)
		return out
	}

	draw.Draw(out, out.Bounds(), im, b.Min, draw.Src)
	return out
}

// Clone copies img
func Clone(img *image.NRGBA) *image.NRGBA {
	return ToNRGBA(img)
}

// blit copies the sr area of src into dst at dp, row by row. callers check bounds
func blit(dst *image.NRGBA, dp image.Point, src *image.NRGBA, sr image.Rectangle) {
	w := sr.Dx() * 4
	for y := 0; y < sr.Dy(); y++ {
		si := src.PixOffset(sr.Min.X, sr.Min.Y+y)
		di := dst.PixOffset(dp.X, dp.Y+y)
		copy(dst.Pix[di:di+w], src.Pix[si:si+w])
	}
}
