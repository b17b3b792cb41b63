package skin

// decode.go: reading source images off disk

import (
	"fmt"
	"image"
	"io"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Decode reads any registered image format into an NRGBA image
func Decode(r io.Reader) (*image.NRGBA, error) {
	im, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return ToNRGBA(im), nil
}

// Load decodes the image at path. a missing or unreadable file is a decode error too
func Load(path string) (*image.NRGBA, error) {
	fi, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer fi.Close()

	return Decode(fi)
}
