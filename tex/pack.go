package tex

import (
	"fmt"
	"image"
)

// Pack serializes img into out, whose length is the fixed capacity the host
// allotted for this content. out must be at least as long as the natural size.
//
// When the image is smaller than the capacity, the trailer is moved from the
// end of the natural serialization to the end of out; the bytes between the
// payload and the trailer are left as they were. The capacity is always what
// gets reported back as the written size.
func Pack(out []byte, f Format, name string, img *image.NRGBA) (int, error) {
	c, h := len(out), f.TrailerSize()
	if h == 0 {
		return 0, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
	if h > c {
		return 0, fmt.Errorf("%w: %d byte buffer, %d byte trailer", ErrCapacity, c, h)
	}

	r := img.Bounds()
	size := Size(f, r.Dx(), r.Dy())
	if size > c {
		return 0, fmt.Errorf("%w: %dx%d %v needs %d bytes, buffer holds %d", ErrOverflow, r.Dx(), r.Dy(), f, size, c)
	}

	// out[:0] has room for size bytes, so this never reallocates
	natural, err := Append(out[:0:c], f, name, img)
	if err != nil {
		return 0, err
	}
	if len(natural) != size {
		return 0, fmt.Errorf("%v serialized to %d bytes, expected %d", f, len(natural), size)
	}

	if size < c {
		// builtin copy handles the overlap when c-h < size
		copy(out[c-h:c], out[size-h:size])
	}

	return c, nil
}
