package skin

// rect.go: in-place region operations on a single pixel buffer

import (
	"fmt"
	"image"
)

// CopyRect copies the r area of img so that its top left corner lands on dst.
// source and destination may overlap; the result is as if the source area had
// been copied out before anything was written.
func CopyRect(img *image.NRGBA, r image.Rectangle, dst image.Point) error {
	to := image.Rectangle{Min: dst, Max: dst.Add(r.Size())}
	if r.Empty() {
		return nil
	}
	if !r.In(img.Rect) || !to.In(img.Rect) {
		return fmt.Errorf("%w: copy %v to %v in %v", ErrOutOfBounds, r, to, img.Rect)
	}

	w := r.Dx() * 4
	tmp := make([]byte, w*r.Dy())
	for y := 0; y < r.Dy(); y++ {
		i := img.PixOffset(r.Min.X, r.Min.Y+y)
		copy(tmp[y*w:(y+1)*w], img.Pix[i:i+w])
	}
	for y := 0; y < r.Dy(); y++ {
		i := img.PixOffset(dst.X, dst.Y+y)
		copy(img.Pix[i:i+w], tmp[y*w:(y+1)*w])
	}

	return nil
}

// FlipH mirrors the r area of img left to right
func FlipH(img *image.NRGBA, r image.Rectangle) error {
	if r.Empty() {
		return nil
	}
	if !r.In(img.Rect) {
		return fmt.Errorf("%w: flip %v in %v", ErrOutOfBounds, r, img.Rect)
	}

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for l, h := r.Min.X, r.Max.X-1; l < h; l, h = l+1, h-1 {
			i, j := img.PixOffset(l, y), img.PixOffset(h, y)
			for c := 0; c < 4; c++ {
				img.Pix[i+c], img.Pix[j+c] = img.Pix[j+c], img.Pix[i+c]
			}
		}
	}

	return nil
}

// copyFlipped copies an area and mirrors it at the destination
func copyFlipped(img *image.NRGBA, from image.Point, size image.Point, to image.Point) error {
	if err := CopyRect(img, image.Rectangle{Min: from, Max: from.Add(size)}, to); err != nil {
		return err
	}

	return FlipH(img, image.Rectangle{Min: to, Max: to.Add(size)})
}

// copyRotatedFlipped copies an area while rotating it right by shift columns
// (wrapping around), then mirrors it at the destination
func copyRotatedFlipped(img *image.NRGBA, from image.Point, size image.Point, to image.Point, shift int) error {
	w, h := size.X, size.Y
	shift %= w

	left := image.Rect(from.X, from.Y, from.X+w-shift, from.Y+h)
	if err := CopyRect(img, left, image.Pt(to.X+shift, to.Y)); err != nil {
		return err
	}
	right := image.Rect(from.X+w-shift, from.Y, from.X+w, from.Y+h)
	if err := CopyRect(img, right, to); err != nil {
		return err
	}

	return FlipH(img, image.Rectangle{Min: to, Max: to.Add(size)})
}
