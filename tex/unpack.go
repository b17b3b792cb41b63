package tex

// unpack.go: reading containers back, natural or packed

import (
	"fmt"
	"hash/crc32"
	"image"
)

// ReadHeader decodes the trailer at the end of data
func ReadHeader(data []byte, f Format) (Header, error) {
	n := f.TrailerSize()
	if n == 0 {
		return Header{}, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
	if len(data) < n {
		return Header{}, fmt.Errorf("%w: %d bytes, trailer is %d", ErrTruncated, len(data), n)
	}

	t := data[len(data)-n:]
	switch f {
	case Nutex:
		return parseNutexTrailer(t)
	default:
		return parseBntxTrailer(t)
	}
}

// Unpack decodes a container. the trailer is read from the end of data and the
// payload from the start, so packed buffers decode the same as natural ones
func Unpack(data []byte, f Format) (*image.NRGBA, Header, error) {
	h, err := ReadHeader(data, f)
	if err != nil {
		return nil, h, err
	}

	size := h.Width * h.Height * 4
	if h.Width <= 0 || h.Height <= 0 || size != h.PayloadSize || size > len(data)-f.TrailerSize() {
		return nil, h, fmt.Errorf("%w: %dx%d payload in %d bytes", ErrTruncated, h.Width, h.Height, len(data))
	}

	payload := data[:size]
	if f == Bntx && crc32.ChecksumIEEE(payload) != h.Checksum {
		return nil, h, ErrChecksum
	}

	img := image.NewNRGBA(image.Rect(0, 0, h.Width, h.Height))
	copy(img.Pix, payload)

	return img, h, nil
}
