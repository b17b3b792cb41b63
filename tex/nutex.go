package tex

// nutex.go: model texture trailer
//
// 0x00 " XNT"
// 0x04 name, 0x40 bytes ascii, nul padded
// 0x44 width, height, depth
// 0x50 pixel format (1 byte) + 3 padding
// 0x54 mip count, alignment, array count, payload size
// 0x64 " XET"
// 0x68 version major, minor (u16)
// 0x6c mip size table, 17 u32

import (
	"bytes"
	"encoding/binary"
)

const (
	nutexTrailerSize = 0xb0
	nutexNameSize    = 0x40
	nutexMipSlots    = 17

	nutexFormatRGBA8 uint8 = 0x00
	nutexAlignment         = 0x1000
)

var (
	nutexMagic = []byte(" XNT")
	nutexTex   = []byte(" XET")
)

func appendNutexTrailer(b []byte, name string, w, h int) []byte {
	size := uint32(w * h * 4)

	b = append(b, nutexMagic...)
	b = appendASCII(b, shortName(name), nutexNameSize)
	b = binary.LittleEndian.AppendUint32(b, uint32(w))
	b = binary.LittleEndian.AppendUint32(b, uint32(h))
	b = binary.LittleEndian.AppendUint32(b, 1) // depth
	b = append(b, nutexFormatRGBA8, 0, 0, 0)
	b = binary.LittleEndian.AppendUint32(b, 1) // mips
	b = binary.LittleEndian.AppendUint32(b, nutexAlignment)
	b = binary.LittleEndian.AppendUint32(b, 1) // array count
	b = binary.LittleEndian.AppendUint32(b, size)
	b = append(b, nutexTex...)
	b = binary.LittleEndian.AppendUint16(b, 1)
	b = binary.LittleEndian.AppendUint16(b, 2)

	b = binary.LittleEndian.AppendUint32(b, size)
	for i := 1; i < nutexMipSlots; i++ {
		b = binary.LittleEndian.AppendUint32(b, 0)
	}

	return b
}

func parseNutexTrailer(t []byte) (Header, error) {
	if !bytes.Equal(t[0:4], nutexMagic) || !bytes.Equal(t[0x64:0x68], nutexTex) {
		return Header{}, ErrMagic
	}

	return Header{
		Format:      Nutex,
		Name:        string(bytes.TrimRight(t[0x04:0x44], "\x00")),
		Width:       int(binary.LittleEndian.Uint32(t[0x44:0x48])),
		Height:      int(binary.LittleEndian.Uint32(t[0x48:0x4c])),
		PayloadSize: int(binary.LittleEndian.Uint32(t[0x60:0x64])),
	}, nil
}

// appendASCII appends s as a fixed n byte field, keeping at least one nul
func appendASCII(b []byte, s string, n int) []byte {
	if len(s) > n-1 {
		s = s[:n-1]
	}
	b = append(b, s...)
	return append(b, make([]byte, n-len(s))...)
}
