package shade

import (
	"context"
	"image"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"
)

const defaultBandRows = 16

// Renderer shades full frames on the CPU. Rows are split into bands that
// run concurrently; each band owns its rows, so the output does not depend
// on the worker count.
type Renderer struct {
	// Workers bounds concurrent bands. 0 means GOMAXPROCS.
	Workers int
	// BandRows is the height of one band. 0 means 16.
	BandRows int
}

// Render shades dst. The resolution uniforms are taken from dst.
func (r Renderer) Render(ctx context.Context, dst *image.RGBA, u Uniforms) error {
	b := dst.Bounds()
	u.Width, u.Height = b.Dx(), b.Dy()
	if u.Width == 0 || u.Height == 0 {
		return nil
	}
	sh := NewShader(u)

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	band := r.BandRows
	if band <= 0 {
		band = defaultBandRows
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for y0 := 0; y0 < u.Height; y0 += band {
		y1 := min(y0+band, u.Height)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sh.rows(dst, y0, y1)
			return nil
		})
	}
	return g.Wait()
}

// rows shades image rows [y0, y1). Image row 0 is the top of the frame.
func (s *Shader) rows(dst *image.RGBA, y0, y1 int) {
	b := dst.Bounds()
	h := b.Dy()
	for y := y0; y < y1; y++ {
		fy := float32(h-y) - 0.5
		off := dst.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < b.Dx(); x++ {
			c := s.Fragment(float32(x)+0.5, fy)
			putRGB(dst.Pix[off:off+4], c)
			off += 4
		}
	}
}

func putRGB(p []uint8, c mgl32.Vec3) {
	p[0] = unorm8(c[0])
	p[1] = unorm8(c[1])
	p[2] = unorm8(c[2])
	p[3] = 0xff
}

func unorm8(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v*255 + 0.5)
}
