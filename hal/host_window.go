//go:build cgo || js

package hal

import (
	"context"
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"skyline/internal/buildinfo"
	"skyline/sky/shade"
)

// RunWindow opens a window that shows the scene and forwards pointer and
// keyboard input. It blocks until the window closes, ctx is done or the
// app returns ErrQuit.
func RunWindow(ctx context.Context, newApp func(HAL) func() error, cfg WindowConfig, opts Options) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 720
	}
	dom := newDOMOverlay()
	disp := &windowDisplay{w: cfg.Width, h: cfg.Height, scale: 1, dom: dom}
	h := newHost(opts, disp, newHostTime(nil))

	g := &hostGame{
		ctx:      ctx,
		h:        h,
		disp:     disp,
		cpu:      cfg.CPU,
		renderer: shade.Renderer{Workers: opts.Workers},
		dom:      dom,
	}
	g.step = newApp(h)

	ebiten.SetWindowTitle(buildinfo.Title())
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	h.log.Info("window starting", "width", cfg.Width, "height", cfg.Height, "cpu", cfg.CPU, buildinfo.Attr())
	return ebiten.RunGame(g)
}

type windowDisplay struct {
	w, h  int
	scale float64
	dom   *domOverlay

	scene     Scene
	presented bool
}

func (d *windowDisplay) Size() (w, h int) { return d.w, d.h }
func (d *windowDisplay) Scale() float64   { return d.scale }

// Dial is the page's dial when the DOM overlay provides one, else the
// dial drawn in the top-right corner.
func (d *windowDisplay) Dial() image.Rectangle {
	if r, ok := d.dom.dial(); ok {
		return r
	}
	return DialRect(d.w)
}

// Present keeps s for the next Draw. Update and Draw run on the same
// goroutine, so the slices in s stay valid until the next step.
func (d *windowDisplay) Present(s Scene) error {
	d.scene = s
	d.presented = true
	return nil
}

type hostGame struct {
	ctx      context.Context
	h        *hostHAL
	disp     *windowDisplay
	step     func() error
	cpu      bool
	renderer shade.Renderer
	progs    *programs
	dom      *domOverlay

	sky       *ebiten.Image
	post      *ebiten.Image
	moonAtlas *ebiten.Image
	moonSrc   image.Image
	cpuImg    *image.RGBA
	help      bool
}

func (g *hostGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if g.progs == nil {
		g.progs = compilePrograms(g.h.log, g.h.metrics, !g.cpu)
	}
	g.h.in.poll()
	g.h.t.tick()
	if g.step != nil {
		if err := g.step(); err != nil {
			if errors.Is(err, ErrQuit) {
				return ebiten.Termination
			}
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	if !g.disp.presented {
		return
	}
	s := g.disp.scene
	sky := g.drawSky(s)

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	bw, bh := sky.Bounds().Dx(), sky.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sw)/float64(bw), float64(sh)/float64(bh))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sky, op)

	if !g.dom.apply(s) {
		g.drawOverlay(screen, s)
		g.setCursor(s.CursorHelp)
	}

	mode := "window"
	if g.cpu {
		mode = "cpu"
	}
	g.h.metrics.Frame(mode)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.disp.w, g.disp.h = max(outsideWidth, 1), max(outsideHeight, 1)
	if m := ebiten.Monitor(); m != nil {
		g.disp.scale = m.DeviceScaleFactor()
	}
	return g.disp.w, g.disp.h
}

func (g *hostGame) setCursor(help bool) {
	if help == g.help {
		return
	}
	g.help = help
	if help {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
		return
	}
	ebiten.SetCursorShape(ebiten.CursorShapeDefault)
}

// ensureImage returns img when it already is w×h, otherwise a fresh image.
func ensureImage(img *ebiten.Image, w, h int) *ebiten.Image {
	if img != nil {
		b := img.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return img
		}
		img.Deallocate()
	}
	return ebiten.NewImage(w, h)
}
