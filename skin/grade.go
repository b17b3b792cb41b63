package skin

import (
	"image"
	"math"
)

const (
	gradeGamma = 1.385
	gradeCeil  = 184
)

// every channel value maps through the same curve, so it is computed once
var gradeTable = func() (t [256]uint8) {
	for v := range t {
		f := math.Pow(float64(v)/255, 1/gradeGamma) * 255 * gradeCeil / 255
		t[v] = uint8(math.Min(math.Max(math.Floor(f), 0), 255))
	}
	return t
}()

// GradeValue returns the graded value of a single color channel
func GradeValue(v uint8) uint8 {
	return gradeTable[v]
}

// Grade brightens the midtones of img and squeezes every color channel into
// [0, 184], in place. alpha is left alone
func Grade(img *image.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		row := img.Pix[i : i+b.Dx()*4]
		for x := 0; x < len(row); x += 4 {
			row[x] = gradeTable[row[x]]
			row[x+1] = gradeTable[row[x+1]]
			row[x+2] = gradeTable[row[x+2]]
		}
	}
}
