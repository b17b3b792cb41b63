package skin

// icon.go: stock icons and portraits built out of the face of a skin

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/KononK/resize"
	"golang.org/x/image/draw"
)

const (
	faceSize   = 40
	faceOffset = 12
)

//go:embed stock_outline.png
var outlinePNG []byte

var outline = sync.OnceValues(func() (*image.NRGBA, error) {
	im, err := png.Decode(bytes.NewReader(outlinePNG))
	if err != nil {
		return nil, err
	}
	return ToNRGBA(im), nil
})

// Outline returns a fresh copy of the stock icon template
func Outline() (*image.NRGBA, error) {
	o, err := outline()
	if err != nil {
		return nil, fmt.Errorf("stock outline: %w", err)
	}
	return Clone(o), nil
}

// Face returns a view of the front face of a square skin, 8s x 8s at (8s, 8s)
func Face(src *image.NRGBA) (*image.NRGBA, error) {
	b := src.Bounds()
	if b.Dx() != b.Dy() {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotSquare, b.Dx(), b.Dy())
	}
	s := Scale(b.Dx())
	if s < 1 {
		return nil, fmt.Errorf("%w: %dx%d is too small", ErrLayout, b.Dx(), b.Dy())
	}

	r := image.Rect(8*s, 8*s, 16*s, 16*s).Add(b.Min)
	return src.SubImage(r).(*image.NRGBA), nil
}

// scaleFace crops the face and resizes it with no interpolation
func scaleFace(src *image.NRGBA, size uint) (*image.NRGBA, error) {
	face, err := Face(src)
	if err != nil {
		return nil, err
	}

	// resize wants the crop at the origin
	return ToNRGBA(resize.Resize(size, size, ToNRGBA(face), resize.NearestNeighbor)), nil
}

// GenIcon builds a stock icon: the face scaled to 40x40, reduced to a small
// palette and laid over the outline template at (12, 12)
func GenIcon(src *image.NRGBA) (*image.NRGBA, error) {
	face, err := scaleFace(src, faceSize)
	if err != nil {
		return nil, err
	}

	if _, err := Quantize(face, PaletteSize, PaletteQuality); err != nil {
		return nil, err
	}

	out, err := Outline()
	if err != nil {
		return nil, err
	}

	r := image.Rect(faceOffset, faceOffset, faceOffset+faceSize, faceOffset+faceSize)
	draw.Draw(out, r, face, face.Bounds().Min, draw.Over)

	return out, nil
}

// GenPortrait scales the face up to a size x size square and grades it
func GenPortrait(src *image.NRGBA, size int) (*image.NRGBA, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: portrait size %d", ErrLayout, size)
	}

	face, err := scaleFace(src, uint(size))
	if err != nil {
		return nil, err
	}

	Grade(face)
	return face, nil
}
