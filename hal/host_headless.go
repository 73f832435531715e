package hal

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	xdraw "golang.org/x/image/draw"

	"skyline/internal/metrics"
	"skyline/sky/labels"
	"skyline/sky/shade"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64
	// Width and Height are the logical surface and the snapshot size.
	Width  int
	Height int
	// Out is the PNG written when the run ends.
	Out string
	// Start is the simulated wall clock at tick 0. Zero means time.Now().
	Start time.Time
}

// RunHeadless runs the scene without opening a window. The frame clock
// advances by 1/Hz per tick regardless of how long a tick takes. When
// the run ends (after Ticks, on ErrQuit or on cancellation) the last
// presented frame is shaded on the CPU and written to Out.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig, opts Options) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid headless size: %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Start.IsZero() {
		cfg.Start = time.Now()
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	disp := &headlessDisplay{w: cfg.Width, h: cfg.Height, metrics: opts.Metrics}
	h := newHost(opts, disp, newSimulatedTime(cfg.Start, cfg.Hz))
	step := newApp(h)
	renderer := shade.Renderer{Workers: opts.Workers}

	finish := func() error {
		if disp.frames == 0 {
			h.log.Warn("headless run ended before the first frame; no snapshot written")
			return nil
		}
		start := time.Now()
		fb, err := disp.snapshot(context.WithoutCancel(ctx), renderer)
		if err != nil {
			return err
		}
		h.metrics.ObserveRender(time.Since(start))
		if cfg.Out == "" {
			return nil
		}
		if err := fb.WritePNG(cfg.Out); err != nil {
			return err
		}
		h.log.Info("snapshot written", "path", cfg.Out, "width", fb.Width(), "height", fb.Height(),
			"frames", disp.frames, "elapsed", time.Since(start))
		return nil
	}

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			if err := finish(); err != nil {
				return err
			}
			return ctx.Err()
		case <-t.C:
			h.t.tick()
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrQuit) {
						return finish()
					}
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return finish()
			}
		}
	}
}

// headlessDisplay keeps the latest scene; shading happens once, in
// snapshot.
type headlessDisplay struct {
	w, h    int
	metrics *metrics.Collector

	last   Scene
	labels []labels.Placement
	sats   []mgl32.Vec3
	frames uint64
}

func (d *headlessDisplay) Size() (w, h int) { return d.w, d.h }
func (d *headlessDisplay) Scale() float64   { return 1 }

func (d *headlessDisplay) Dial() image.Rectangle { return DialRect(d.w) }

func (d *headlessDisplay) Present(s Scene) error {
	// The caller reuses its slices between frames.
	d.labels = append(d.labels[:0], s.Labels...)
	d.sats = append(d.sats[:0], s.Uniforms.Satellites...)
	s.Labels = d.labels
	s.Uniforms.Satellites = d.sats
	d.last = s
	d.frames++
	d.metrics.Frame("headless")
	return nil
}

func (d *headlessDisplay) snapshot(ctx context.Context, r shade.Renderer) (*hostFramebuffer, error) {
	u := d.last.Uniforms
	if u.Width <= 0 || u.Height <= 0 {
		u.Width, u.Height = d.w, d.h
	}
	sky := image.NewRGBA(image.Rect(0, 0, u.Width, u.Height))
	if err := r.Render(ctx, sky, u); err != nil {
		return nil, fmt.Errorf("render snapshot: %w", err)
	}
	if d.last.Grain {
		shade.Grain(sky, u.Time, shade.GrainOpacity)
	}

	fb := newHostFramebuffer(d.w, d.h)
	if sky.Rect.Eq(fb.img.Rect) {
		copy(fb.img.Pix, sky.Pix)
	} else {
		xdraw.BiLinear.Scale(fb.img, fb.img.Rect, sky, sky.Rect, xdraw.Src, nil)
	}
	drawOverlay(newFBDisplay(fb), d.last)
	return fb, nil
}
