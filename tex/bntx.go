package tex

// bntx.go: ui texture trailer
//
// 0x00 "BNTX"
// 0x04 version
// 0x08 byte order mark 0xfeff, trailer size (u16)
// 0x0c width, height, payload size
// 0x18 content id (u64)
// 0x20 name, 0x40 bytes utf-16le, nul padded
// 0x60 pixel format, tile mode, array count, mip count
// 0x70 "BRTD"
// 0x74 crc32 of the payload
// 0x78 reserved

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

const (
	bntxTrailerSize = 0x80
	bntxNameSize    = 0x40

	bntxVersion     = 0x00040000
	bntxBOM         = 0xfeff
	bntxFormatRGBA8 = 0x0b01
)

var (
	bntxMagic = []byte("BNTX")
	bntxData  = []byte("BRTD")

	utf16 = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
)

func appendBntxTrailer(b []byte, name string, w, h int, sum uint32) ([]byte, error) {
	n, err := utf16.NewEncoder().Bytes([]byte(shortName(name)))
	if err != nil {
		return nil, fmt.Errorf("bntx name %q: %w", name, err)
	}
	// keep a terminating nul unit
	if len(n) > bntxNameSize-2 {
		n = n[:bntxNameSize-2]
	}

	b = append(b, bntxMagic...)
	b = binary.LittleEndian.AppendUint32(b, bntxVersion)
	b = binary.LittleEndian.AppendUint16(b, bntxBOM)
	b = binary.LittleEndian.AppendUint16(b, bntxTrailerSize)
	b = binary.LittleEndian.AppendUint32(b, uint32(w))
	b = binary.LittleEndian.AppendUint32(b, uint32(h))
	b = binary.LittleEndian.AppendUint32(b, uint32(w*h*4))
	b = binary.LittleEndian.AppendUint64(b, Hash40(name))
	b = append(b, n...)
	b = append(b, make([]byte, bntxNameSize-len(n))...)
	b = binary.LittleEndian.AppendUint32(b, bntxFormatRGBA8)
	b = binary.LittleEndian.AppendUint32(b, 0) // linear
	b = binary.LittleEndian.AppendUint32(b, 1) // array count
	b = binary.LittleEndian.AppendUint32(b, 1) // mips
	b = append(b, bntxData...)
	b = binary.LittleEndian.AppendUint32(b, sum)
	b = append(b, make([]byte, 8)...)

	return b, nil
}

func parseBntxTrailer(t []byte) (Header, error) {
	if !bytes.Equal(t[0:4], bntxMagic) || !bytes.Equal(t[0x70:0x74], bntxData) {
		return Header{}, ErrMagic
	}
	if binary.LittleEndian.Uint16(t[0x08:0x0a]) != bntxBOM {
		return Header{}, fmt.Errorf("%w: bad byte order mark", ErrMagic)
	}

	raw := t[0x20:0x60]
	for i := 0; i+1 < len(raw); i += 2 {
		if raw[i] == 0 && raw[i+1] == 0 {
			raw = raw[:i]
			break
		}
	}
	name, err := utf16.NewDecoder().Bytes(raw)
	if err != nil {
		return Header{}, fmt.Errorf("bntx name: %w", err)
	}

	return Header{
		Format:      Bntx,
		Name:        string(name),
		Width:       int(binary.LittleEndian.Uint32(t[0x0c:0x10])),
		Height:      int(binary.LittleEndian.Uint32(t[0x10:0x14])),
		PayloadSize: int(binary.LittleEndian.Uint32(t[0x14:0x18])),
		ID:          binary.LittleEndian.Uint64(t[0x18:0x20]),
		Checksum:    binary.LittleEndian.Uint32(t[0x74:0x78]),
	}, nil
}
