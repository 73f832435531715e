package texture

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Bitmap is a decoded image held as straight-alpha float RGBA, ready for
// filtered sampling.
type Bitmap struct {
	w, h int
	pix  []float32
}

// NewBitmap converts img. A nil or empty image yields the transparent
// placeholder.
func NewBitmap(img image.Image) *Bitmap {
	if img == nil || img.Bounds().Empty() {
		img = Placeholder()
	}
	r := img.Bounds()
	b := &Bitmap{w: r.Dx(), h: r.Dy(), pix: make([]float32, r.Dx()*r.Dy()*4)}
	i := 0
	if src, ok := img.(*image.NRGBA); ok {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			row := src.Pix[src.PixOffset(r.Min.X, y):]
			for x := 0; x < b.w*4; x++ {
				b.pix[i] = float32(row[x]) / 255
				i++
			}
		}
		return b
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			b.pix[i+0] = float32(c.R) / 255
			b.pix[i+1] = float32(c.G) / 255
			b.pix[i+2] = float32(c.B) / 255
			b.pix[i+3] = float32(c.A) / 255
			i += 4
		}
	}
	return b
}

func (b *Bitmap) Size() (w, h int) { return b.w, b.h }

// Sample filters the bitmap at (u, v) in [0,1]². v = 0 is the first image
// row. Coordinates outside the unit square clamp to the edge texels.
func (b *Bitmap) Sample(u, v float32) mgl32.Vec4 {
	x := clamp01(u)*float32(b.w) - 0.5
	y := clamp01(v)*float32(b.h) - 0.5

	fx0 := float32(math.Floor(float64(x)))
	fy0 := float32(math.Floor(float64(y)))
	tx, ty := x-fx0, y-fy0

	x0 := clampInt(int(fx0), b.w)
	x1 := clampInt(int(fx0)+1, b.w)
	y0 := clampInt(int(fy0), b.h)
	y1 := clampInt(int(fy0)+1, b.h)

	c00 := b.texel(x0, y0)
	c10 := b.texel(x1, y0)
	c01 := b.texel(x0, y1)
	c11 := b.texel(x1, y1)

	top := c00.Mul(1 - tx).Add(c10.Mul(tx))
	bot := c01.Mul(1 - tx).Add(c11.Mul(tx))
	return top.Mul(1 - ty).Add(bot.Mul(ty))
}

func (b *Bitmap) texel(x, y int) mgl32.Vec4 {
	i := (y*b.w + x) * 4
	return mgl32.Vec4{b.pix[i], b.pix[i+1], b.pix[i+2], b.pix[i+3]}
}

func clamp01(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampInt(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
