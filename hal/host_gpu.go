//go:build cgo || js

package hal

import (
	"image"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"skyline/internal/metrics"
	"skyline/sky/kage"
	"skyline/sky/shade"
)

type programs struct {
	sky   *ebiten.Shader
	grain *ebiten.Shader
}

// compilePrograms builds the GPU programs. A program that fails to
// compile is logged, counted and left nil; the caller skips its layer.
func compilePrograms(log *slog.Logger, m *metrics.Collector, sky bool) *programs {
	p := &programs{}
	var err error
	if sky {
		if p.sky, err = ebiten.NewShader(kage.SkySource); err != nil {
			log.Error("sky program failed to compile; sky layer disabled", "error", err)
			m.ProgramFailed("sky")
			p.sky = nil
		}
	}
	if p.grain, err = ebiten.NewShader(kage.GrainSource); err != nil {
		log.Error("grain program failed to compile; overlay disabled", "error", err)
		m.ProgramFailed("grain")
		p.grain = nil
	}
	return p
}

// drawSky shades the scene at the drawable size and returns the image to
// scale onto the screen.
func (g *hostGame) drawSky(s Scene) *ebiten.Image {
	u := s.Uniforms
	w, h := max(u.Width, 1), max(u.Height, 1)
	u.Width, u.Height = w, h
	g.sky = ensureImage(g.sky, w, h)

	if g.cpu {
		g.shadeCPU(u, s.Grain)
		return g.sky
	}

	if g.progs.sky == nil {
		g.sky.Clear()
	} else {
		op := &ebiten.DrawRectShaderOptions{Uniforms: kage.SkyUniforms(u)}
		op.Images[0] = g.moonAtlasFor(s.Moon, w, h)
		op.Blend = ebiten.BlendCopy
		g.sky.DrawRectShader(w, h, g.progs.sky, op)
	}

	if !s.Grain || g.progs.grain == nil {
		return g.sky
	}
	g.post = ensureImage(g.post, w, h)
	gop := &ebiten.DrawRectShaderOptions{Uniforms: kage.GrainUniforms(u.Time, shade.GrainOpacity)}
	gop.Images[0] = g.sky
	gop.Blend = ebiten.BlendCopy
	g.post.DrawRectShader(w, h, g.progs.grain, gop)
	return g.post
}

// moonAtlasFor returns the moon texture stretched over a w×h image, the
// size the sky program requires of its source images. It is rebuilt only
// when the texture or the size changes.
func (g *hostGame) moonAtlasFor(moon image.Image, w, h int) *ebiten.Image {
	if g.moonAtlas != nil && g.moonSrc == moon {
		b := g.moonAtlas.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return g.moonAtlas
		}
	}
	g.moonAtlas = ensureImage(g.moonAtlas, w, h)
	g.moonAtlas.Clear()
	g.moonSrc = moon
	if moon == nil || moon.Bounds().Empty() {
		return g.moonAtlas
	}

	src := ebiten.NewImageFromImage(moon)
	defer src.Deallocate()
	mb := moon.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w)/float64(mb.Dx()), float64(h)/float64(mb.Dy()))
	op.Filter = ebiten.FilterLinear
	op.Blend = ebiten.BlendCopy
	g.moonAtlas.DrawImage(src, op)
	return g.moonAtlas
}

func (g *hostGame) shadeCPU(u shade.Uniforms, grain bool) {
	if g.cpuImg == nil || g.cpuImg.Rect.Dx() != u.Width || g.cpuImg.Rect.Dy() != u.Height {
		g.cpuImg = image.NewRGBA(image.Rect(0, 0, u.Width, u.Height))
	}
	start := time.Now()
	if err := g.renderer.Render(g.ctx, g.cpuImg, u); err != nil {
		g.h.log.Debug("cpu render interrupted", "error", err)
		return
	}
	if grain {
		shade.Grain(g.cpuImg, u.Time, shade.GrainOpacity)
	}
	g.h.metrics.ObserveRender(time.Since(start))
	g.sky.WritePixels(g.cpuImg.Pix)
}
