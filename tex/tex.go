// Package tex serializes images into the texture containers requested by the
// host and packs them into fixed capacity buffers.
//
// Both containers are a raw RGBA8 payload followed by a fixed size trailer.
// The host always looks for the trailer at the very end of the buffer it
// handed out, so when an image is smaller than the largest one a buffer was
// sized for, the trailer gets moved to the end (see Pack).
package tex

import (
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"path"
	"strings"
)

// Format is a texture container format
type Format uint8

const (
	Nutex Format = iota // model textures, 0xb0 byte trailer
	Bntx                // ui textures, 0x80 byte trailer
)

var (
	ErrOverflow      = errors.New("image does not fit in the buffer")
	ErrCapacity      = errors.New("buffer cannot hold a trailer")
	ErrTruncated     = errors.New("data is shorter than its trailer says")
	ErrMagic         = errors.New("missing trailer magic")
	ErrChecksum      = errors.New("payload checksum mismatch")
	ErrUnknownFormat = errors.New("unknown container format")
)

func (f Format) String() string {
	switch f {
	case Nutex:
		return "nutexb"
	case Bntx:
		return "bntx"
	default:
		return fmt.Sprintf("format(%d)", uint8(f))
	}
}

// ParseFormat accepts the names returned by Format.String, with or without a dot
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(s), ".") {
	case "nutexb", "nutex":
		return Nutex, nil
	case "bntx":
		return Bntx, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// TrailerSize returns the length of the trailer of f, 0 for unknown formats
func (f Format) TrailerSize() int {
	switch f {
	case Nutex:
		return nutexTrailerSize
	case Bntx:
		return bntxTrailerSize
	default:
		return 0
	}
}

// Header is the decoded trailer of a container
type Header struct {
	Format      Format
	Name        string
	Width       int
	Height      int
	PayloadSize int
	ID          uint64 // bntx only
	Checksum    uint32 // bntx only
}

// Size returns the natural serialized size of a w x h image
func Size(f Format, w, h int) int {
	return w*h*4 + f.TrailerSize()
}

// Hash40 returns the content id of an asset path: the length of the lower
// cased path in the top bits and its crc32 in the bottom 32
func Hash40(p string) uint64 {
	p = strings.ToLower(p)
	return uint64(len(p))<<32 | uint64(crc32.ChecksumIEEE([]byte(p)))
}

// shortName strips the directory and extension off an asset path
func shortName(p string) string {
	b := path.Base(p)
	return strings.TrimSuffix(b, path.Ext(b))
}

func appendPayload(b []byte, img *image.NRGBA) []byte {
	r := img.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := img.PixOffset(r.Min.X, y)
		b = append(b, img.Pix[i:i+r.Dx()*4]...)
	}
	return b
}

// Append appends the natural serialization of img (payload, then trailer) to b
func Append(b []byte, f Format, name string, img *image.NRGBA) ([]byte, error) {
	r := img.Bounds()
	start := len(b)

	b = appendPayload(b, img)
	payload := b[start:]

	switch f {
	case Nutex:
		return appendNutexTrailer(b, name, r.Dx(), r.Dy()), nil
	case Bntx:
		return appendBntxTrailer(b, name, r.Dx(), r.Dy(), crc32.ChecksumIEEE(payload))
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
}

// Encode returns the natural serialization of img
func Encode(f Format, name string, img *image.NRGBA) ([]byte, error) {
	r := img.Bounds()
	return Append(make([]byte, 0, Size(f, r.Dx(), r.Dy())), f, name, img)
}
