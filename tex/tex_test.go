package tex

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x * y), A: 0xff})
		}
	}
	return img
}

func TestHash40(t *testing.T) {
	tests := map[string]uint64{
		"fighter/pickel/model/body/c00/def_pickel_001_col.nutexb": 0x37ae458690,
		"ui/replace_patch/chara/chara_2/chara_2_pickel_00.bntx":   0x35172acf20,
		"UI/replace_patch/chara/chara_2/chara_2_pickel_00.BNTX":   0x35172acf20,
	}

	for in, want := range tests {
		if got := Hash40(in); got != want {
			t.Fatalf("%q: got %#x, want %#x", in, got, want)
		}
	}
	if got := Hash40(""); got != 0 {
		t.Fatalf("empty path hashed to %#x", got)
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]struct {
		want Format
		err  error
	}{
		"nutexb": {want: Nutex},
		".BNTX":  {want: Bntx},
		"png":    {err: ErrUnknownFormat},
	}

	for in, test := range tests {
		f, err := ParseFormat(in)
		if !errors.Is(err, test.err) {
			t.Fatalf("%s: expected %v, got %v", in, test.err, err)
		}
		if err == nil && f != test.want {
			t.Fatalf("%s: got %v", in, f)
		}
	}
}

func TestEncodeUnpack(t *testing.T) {
	for _, f := range []Format{Nutex, Bntx} {
		img := testImage(16, 8)
		name := "ui/replace_patch/chara/chara_2/chara_2_pickel_03.bntx"

		data, err := Encode(f, name, img)
		if err != nil {
			t.Fatalf("%v: %v", f, err)
		}
		if len(data) != Size(f, 16, 8) {
			t.Fatalf("%v: %d bytes, expected %d", f, len(data), Size(f, 16, 8))
		}
		if !bytes.Equal(data[:16*8*4], img.Pix) {
			t.Fatalf("%v: payload is not the raw pixels", f)
		}

		out, h, err := Unpack(data, f)
		if err != nil {
			t.Fatalf("%v: %v", f, err)
		}
		if h.Width != 16 || h.Height != 8 || h.Name != "chara_2_pickel_03" || h.Format != f {
			t.Fatalf("%v: unexpected header %+v", f, h)
		}
		if f == Bntx && h.ID != Hash40(name) {
			t.Fatalf("bntx id %#x, expected %#x", h.ID, Hash40(name))
		}
		if !bytes.Equal(out.Pix, img.Pix) {
			t.Fatalf("%v: pixels differ after unpacking", f)
		}
	}
}

func TestEncodeSubImage(t *testing.T) {
	img := testImage(8, 8)
	sub := img.SubImage(image.Rect(2, 2, 6, 6)).(*image.NRGBA)

	data, err := Encode(Nutex, "sub", sub)
	if err != nil {
		t.Fatal(err)
	}
	out, _, err := Unpack(data, Nutex)
	if err != nil {
		t.Fatal(err)
	}
	if out.NRGBAAt(0, 0) != img.NRGBAAt(2, 2) || out.NRGBAAt(3, 3) != img.NRGBAAt(5, 5) {
		t.Fatalf("sub image payload taken from the wrong place")
	}
}

func TestUnpackErrors(t *testing.T) {
	good, err := Encode(Bntx, "x", testImage(4, 4))
	if err != nil {
		t.Fatal(err)
	}

	corrupt := bytes.Clone(good)
	corrupt[0] ^= 0xff

	nomagic := bytes.Clone(good)
	copy(nomagic[len(nomagic)-bntxTrailerSize:], "XXXX")

	tests := map[string]struct {
		data []byte
		f    Format
		err  error
	}{
		"short":    {good[:10], Bntx, ErrTruncated},
		"magic":    {nomagic, Bntx, ErrMagic},
		"wrong":    {good, Nutex, ErrMagic},
		"checksum": {corrupt, Bntx, ErrChecksum},
		"cut":      {good[4*4*4-8:], Bntx, ErrTruncated},
	}

	for name, test := range tests {
		if _, _, err := Unpack(test.data, test.f); !errors.Is(err, test.err) {
			t.Fatalf("%s: expected %q, got %v", name, test.err, err)
		}
	}
}

func TestLongName(t *testing.T) {
	long := "ui/" + string(bytes.Repeat([]byte("n"), 100)) + ".bntx"

	for _, f := range []Format{Nutex, Bntx} {
		data, err := Encode(f, long, testImage(2, 2))
		if err != nil {
			t.Fatalf("%v: %v", f, err)
		}
		if len(data) != Size(f, 2, 2) {
			t.Fatalf("%v: long name changed the trailer size", f)
		}
		if _, _, err := Unpack(data, f); err != nil {
			t.Fatalf("%v: %v", f, err)
		}
	}
}
