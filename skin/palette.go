package skin

// palette.go: palette extraction and nearest color remapping

import (
	"image"
	"image/color"

	"github.com/esimov/colorquant"
)

const (
	PaletteSize    = 10
	PaletteQuality = 4
)

// ExtractPalette picks at most n representative colors out of img.
// only every quality'th pixel is looked at, so lower is slower but closer.
// mostly transparent and near white pixels are skipped
func ExtractPalette(img *image.NRGBA, n, quality int) ([]color.NRGBA, error) {
	if quality < 1 {
		quality = 1
	}
	if n < 1 {
		return nil, ErrNoPalette
	}

	b := img.Bounds()
	total := b.Dx() * b.Dy()

	var samples []color.NRGBA
	distinct := make(map[color.NRGBA]struct{})
	for i := 0; i < total; i += quality {
		c := img.NRGBAAt(b.Min.X+i%b.Dx(), b.Min.Y+i/b.Dx())
		if c.A < 125 || (c.R > 250 && c.G > 250 && c.B > 250) {
			continue
		}
		c.A = 0xff
		samples = append(samples, c)
		distinct[c] = struct{}{}
	}
	if len(samples) == 0 {
		return nil, ErrNoPalette
	}

	// few enough colors to keep all of them
	if len(distinct) <= n {
		return uniq(samples, n), nil
	}

	src := image.NewNRGBA(image.Rect(0, 0, len(samples), 1))
	for i, c := range samples {
		src.SetNRGBA(i, 0, c)
	}

	// median cut; the palette holds the average color of every cluster
	q, ok := colorquant.Quant{}.Quantize(src, n).(*image.Paletted)
	if !ok {
		return nil, ErrNoPalette
	}

	quantized := make([]color.NRGBA, 0, len(q.Palette))
	for _, c := range q.Palette {
		quantized = append(quantized, color.NRGBAModel.Convert(c).(color.NRGBA))
	}

	p := uniq(quantized, n)
	if len(p) == 0 {
		return nil, ErrNoPalette
	}
	return p, nil
}

// uniq returns the first n distinct opaque colors of cs, in order
func uniq(cs []color.NRGBA, n int) []color.NRGBA {
	seen := make(map[color.NRGBA]struct{}, n)
	out := make([]color.NRGBA, 0, n)
	for _, c := range cs {
		c.A = 0xff
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
		if len(out) == n {
			break
		}
	}
	return out
}

// Nearest returns the index of the palette entry closest to c in RGB space.
// the first of several equally close entries wins
func Nearest(p []color.NRGBA, c color.NRGBA) int {
	best, bestd := 0, -1
	for i, e := range p {
		dr := int(e.R) - int(c.R)
		dg := int(e.G) - int(c.G)
		db := int(e.B) - int(c.B)
		d := dr*dr + dg*dg + db*db
		if bestd < 0 || d < bestd {
			best, bestd = i, d
		}
	}
	return best
}

// Remap replaces the color of every pixel of img with its nearest palette
// entry, keeping alpha. p must not be empty
func Remap(img *image.NRGBA, p []color.NRGBA) error {
	if len(p) == 0 {
		return ErrNoPalette
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			px := img.Pix[i : i+4 : i+4]
			e := p[Nearest(p, color.NRGBA{R: px[0], G: px[1], B: px[2]})]
			px[0], px[1], px[2] = e.R, e.G, e.B
		}
	}

	return nil
}

// Quantize extracts a palette out of img and remaps img to it
func Quantize(img *image.NRGBA, n, quality int) ([]color.NRGBA, error) {
	p, err := ExtractPalette(img, n, quality)
	if err != nil {
		return nil, err
	}

	return p, Remap(img, p)
}
