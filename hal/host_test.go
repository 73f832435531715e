package hal

import (
	"context"
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tinygo.org/x/tinyfont"

	"skyline/sky/clock"
	"skyline/sky/labels"
	"skyline/sky/shade"
)

func TestSimulatedTime(t *testing.T) {
	start := time.Date(2024, 10, 16, 21, 0, 0, 0, time.UTC)
	tm := newSimulatedTime(start, 50)
	tm.tick()
	tm.tick()
	if tm.Delta() != 20*time.Millisecond {
		t.Fatalf("delta=%v", tm.Delta())
	}
	if got := tm.Now(); !got.Equal(start.Add(40 * time.Millisecond)) {
		t.Fatalf("now=%v", got)
	}
}

func TestHostTimeClampsDelta(t *testing.T) {
	now := time.Unix(1000, 0)
	tm := newHostTime(func() time.Time { return now })

	tm.tick()
	if tm.Delta() != 0 {
		t.Fatalf("first delta=%v", tm.Delta())
	}
	now = now.Add(16 * time.Millisecond)
	tm.tick()
	if tm.Delta() != 16*time.Millisecond {
		t.Fatalf("delta=%v", tm.Delta())
	}
	now = now.Add(5 * time.Second)
	tm.tick()
	if tm.Delta() != maxFrameDelta {
		t.Fatalf("stalled delta=%v", tm.Delta())
	}
	now = now.Add(-time.Second)
	tm.tick()
	if tm.Delta() != 0 {
		t.Fatalf("backwards delta=%v", tm.Delta())
	}
}

func TestInputDropsWhenFull(t *testing.T) {
	in := newHostInput()
	for i := 0; i < 100; i++ {
		in.emitPointer(PointerEvent{Kind: PointerMove, X: float32(i)})
		in.emitKey(KeyR, true)
	}
	if len(in.Pointer()) != 64 || len(in.Keys()) != 64 {
		t.Fatalf("pointer=%d keys=%d", len(in.Pointer()), len(in.Keys()))
	}
	if ev := <-in.Pointer(); ev.X != 0 {
		t.Fatalf("oldest event X=%v, want 0", ev.X)
	}
}

func TestPointerMovesOnlyWhenChanged(t *testing.T) {
	in := newHostInput()
	// A pointer that never entered the surface reports the origin.
	if in.moved(0, 0) {
		t.Fatal("origin reported as a move")
	}
	if !in.moved(10, 5) {
		t.Fatal("first real position not reported")
	}
	if in.moved(10, 5) {
		t.Fatal("unchanged position reported")
	}
	if !in.moved(0, 0) {
		t.Fatal("return to origin not reported")
	}
}

func TestHeadlessDial(t *testing.T) {
	d := &headlessDisplay{w: 640, h: 480}
	if d.Dial() != DialRect(640) {
		t.Fatalf("dial=%v", d.Dial())
	}
}

func TestDialRect(t *testing.T) {
	r := DialRect(1000)
	if r.Min.X != 920 || r.Min.Y != 20 || r.Dx() != clock.DialSize || r.Dy() != clock.DialSize {
		t.Fatalf("dial=%v", r)
	}
}

func TestBlendOver(t *testing.T) {
	px := []uint8{0, 0, 0, 0xff}
	blendOver(px, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80})
	if px[0] < 0x7f || px[0] > 0x81 || px[3] != 0xff {
		t.Fatalf("half blend=%v", px)
	}
	blendOver(px, color.RGBA{R: 0x10, A: 0})
	if px[0] < 0x7f {
		t.Fatalf("transparent blend changed pixel: %v", px)
	}
	blendOver(px, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff})
	if px[0] != 0x10 || px[1] != 0x20 || px[2] != 0x30 {
		t.Fatalf("opaque blend=%v", px)
	}
}

func TestFBDisplayText(t *testing.T) {
	fb := newHostFramebuffer(64, 24)
	fb.ClearRGB(0, 0, 0)
	d := newFBDisplay(fb)
	if w, h := d.Size(); w != 64 || h != 24 {
		t.Fatalf("size=%dx%d", w, h)
	}
	tinyfont.WriteLine(d, labelFont, 2, 14, "Vega", colorLabelHot)
	if lit(fb) == 0 {
		t.Fatal("text left the framebuffer untouched")
	}

	// Out-of-bounds pixels are ignored.
	d.SetPixel(-1, 3, colorLabelHot)
	d.SetPixel(64, 3, colorLabelHot)
	if err := d.FillRectangle(60, 20, 10, 10, colorKnob); err != nil {
		t.Fatalf("FillRectangle: %v", err)
	}
}

func TestDrawOverlay(t *testing.T) {
	fb := newHostFramebuffer(200, 120)
	fb.ClearRGB(0, 0, 0)
	s := Scene{
		Labels: []labels.Placement{
			{Name: "Vega", Visible: true, Highlighted: true, X: 40, Y: 60},
			{Name: "Hidden", Visible: false, X: 100, Y: 60},
		},
		Readout: clock.Readout{Clock: "21:30", Date: "oct. 16.", KnobX: 30, KnobY: 9},
		Dial:    DialRect(200),
	}
	drawOverlay(newFBDisplay(fb), s)

	img := fb.Image()
	if c := img.RGBAAt(40, 55); c.R == 0 {
		t.Fatal("label line not drawn")
	}
	if c := img.RGBAAt(100, 55); c.R != 0 {
		t.Fatal("hidden label drawn")
	}
	dial := s.Dial
	if c := img.RGBAAt(dial.Min.X+30, dial.Min.Y+9); c.R == 0 {
		t.Fatal("knob not drawn")
	}
}

func lit(fb *hostFramebuffer) int {
	n := 0
	p := fb.Image().Pix
	for i := 0; i+3 < len(p); i += 4 {
		if p[i] != 0 {
			n++
		}
	}
	return n
}

func testScene() Scene {
	return Scene{
		Uniforms: shade.Uniforms{Width: 24, Height: 16, Hour: 22, Time: 3},
		Labels:   []labels.Placement{{Name: "Sirius", Visible: true, X: 12, Y: 20}},
		Dial:     DialRect(48),
		Readout:  clock.Readout{Clock: "22:00", Date: "oct. 16."},
	}
}

func TestRunHeadlessWritesPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "shots", "frame.png")
	start := time.Date(2024, 10, 16, 22, 0, 0, 0, time.UTC)

	steps := 0
	var last time.Time
	err := RunHeadless(context.Background(), func(h HAL) func() error {
		return func() error {
			steps++
			last = h.Time().Now()
			return h.Display().Present(testScene())
		}
	}, HeadlessConfig{Hz: 1000, Ticks: 3, Width: 48, Height: 32, Out: out, Start: start}, Options{Workers: 2})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if steps != 3 {
		t.Fatalf("steps=%d", steps)
	}
	if !last.Equal(start.Add(3 * time.Millisecond)) {
		t.Fatalf("simulated now=%v", last)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 32 {
		t.Fatalf("snapshot size=%v", b)
	}
}

func TestRunHeadlessQuit(t *testing.T) {
	out := filepath.Join(t.TempDir(), "quit.png")
	err := RunHeadless(context.Background(), func(h HAL) func() error {
		n := 0
		return func() error {
			n++
			if n == 2 {
				return ErrQuit
			}
			return h.Display().Present(testScene())
		}
	}, HeadlessConfig{Hz: 1000, Width: 32, Height: 32, Out: out}, Options{})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("snapshot missing: %v", err)
	}
}

func TestRunHeadlessCancel(t *testing.T) {
	out := filepath.Join(t.TempDir(), "cancel.png")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err := RunHeadless(ctx, func(h HAL) func() error {
		return func() error {
			cancel()
			return h.Display().Present(testScene())
		}
	}, HeadlessConfig{Hz: 1000, Width: 32, Height: 32, Out: out}, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v, want context.Canceled", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("snapshot missing after cancel: %v", err)
	}
}

func TestRunHeadlessErrors(t *testing.T) {
	boom := errors.New("boom")
	err := RunHeadless(context.Background(), func(HAL) func() error {
		return func() error { return boom }
	}, HeadlessConfig{Hz: 1000, Width: 8, Height: 8}, Options{})
	if !errors.Is(err, boom) {
		t.Fatalf("err=%v", err)
	}

	err = RunHeadless(context.Background(), nil, HeadlessConfig{Hz: 10, Width: 0, Height: 8}, Options{})
	if err == nil {
		t.Fatal("expected size error")
	}
}

func TestRunHeadlessWithoutFrame(t *testing.T) {
	out := filepath.Join(t.TempDir(), "none.png")
	err := RunHeadless(context.Background(), func(HAL) func() error {
		return func() error { return nil }
	}, HeadlessConfig{Hz: 1000, Ticks: 2, Width: 8, Height: 8, Out: out}, Options{})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("unexpected snapshot: %v", err)
	}
}
