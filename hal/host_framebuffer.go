package hal

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// hostFramebuffer is the RGBA surface the headless host renders into.
type hostFramebuffer struct {
	mu  sync.Mutex
	img *image.RGBA
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	return &hostFramebuffer{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (f *hostFramebuffer) Width() int  { return f.img.Rect.Dx() }
func (f *hostFramebuffer) Height() int { return f.img.Rect.Dy() }

// Image returns the backing image. Callers must not use it concurrently
// with drawing.
func (f *hostFramebuffer) Image() *image.RGBA { return f.img }

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.img.Pix
	for i := 0; i+3 < len(p); i += 4 {
		p[i], p[i+1], p[i+2], p[i+3] = r, g, b, 0xff
	}
}

// WritePNG encodes the framebuffer to path, creating parent directories.
func (f *hostFramebuffer) WritePNG(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(out, f.img); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return out.Close()
}

// fbDisplay adapts the framebuffer to the drivers.Displayer interface so
// tinyfont and tinydraw can draw on it. Pixels are blended source-over.
type fbDisplay struct {
	fb *hostFramebuffer
}

var _ drivers.Displayer = (*fbDisplay)(nil)

func newFBDisplay(fb *hostFramebuffer) *fbDisplay {
	return &fbDisplay{fb: fb}
}

func (d *fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(min(d.fb.Width(), 1<<15-1)), int16(min(d.fb.Height(), 1<<15-1))
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil {
		return
	}
	img := d.fb.img
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= img.Rect.Dx() || iy < 0 || iy >= img.Rect.Dy() {
		return
	}
	off := img.PixOffset(ix, iy)
	blendOver(img.Pix[off:off+4:off+4], c)
}

func (d *fbDisplay) Display() error { return nil }

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.fb == nil {
		return nil
	}
	img := d.fb.img
	x0 := clampInt(int(x), 0, img.Rect.Dx())
	y0 := clampInt(int(y), 0, img.Rect.Dy())
	x1 := clampInt(int(x)+int(width), 0, img.Rect.Dx())
	y1 := clampInt(int(y)+int(height), 0, img.Rect.Dy())
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			off := img.PixOffset(px, py)
			blendOver(img.Pix[off:off+4:off+4], c)
		}
	}
	return nil
}

func (d *fbDisplay) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

var (
	colorLabel     = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x99}
	colorLabelHot  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorLabelLine = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x66}
	colorDial      = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80}
	colorKnob      = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorReadout   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xdd}
)

var labelFont tinyfont.Fonter = &proggy.TinySZ8pt7b

const (
	labelLine   = 14
	labelGap    = 4
	readoutGap  = 12
	readoutLine = 12
	knobRadius  = 4
)

// drawOverlay draws labels, the dial and the clock readout of s.
func drawOverlay(d *fbDisplay, s Scene) {
	w, h := d.Size()
	for _, l := range s.Labels {
		if !l.Visible || !onSurface(l.X, l.Y, float32(w), float32(h)) {
			continue
		}
		x, y := int16(l.X), int16(l.Y)
		tinydraw.Line(d, x, y, x, y-labelLine, colorLabelLine)
		c := colorLabel
		if l.Highlighted {
			c = colorLabelHot
			tinydraw.Circle(d, x, y, knobRadius, colorLabelHot)
		}
		tinyfont.WriteLine(d, labelFont, x+labelGap, y-labelLine, l.Name, c)
	}

	if s.Dial.Empty() {
		return
	}
	r := int16(s.Dial.Dx() / 2)
	cx, cy := int16(s.Dial.Min.X)+r, int16(s.Dial.Min.Y)+r
	tinydraw.Circle(d, cx, cy, r-1, colorDial)
	kx := int16(s.Dial.Min.X) + int16(s.Readout.KnobX)
	ky := int16(s.Dial.Min.Y) + int16(s.Readout.KnobY)
	tinydraw.FilledCircle(d, kx, ky, knobRadius, colorKnob)

	base := int16(s.Dial.Max.Y) + readoutGap
	writeRight(d, int16(s.Dial.Max.X), base, s.Readout.Clock, colorReadout)
	writeRight(d, int16(s.Dial.Max.X), base+readoutLine, s.Readout.Date, colorReadout)
}

func writeRight(d *fbDisplay, right, y int16, str string, c color.RGBA) {
	_, w := tinyfont.LineWidth(labelFont, str)
	tinyfont.WriteLine(d, labelFont, right-int16(w), y, str, c)
}
