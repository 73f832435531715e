package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestRenderDisc(t *testing.T) {
	img := render(64, 3, 20, 4)
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("bounds=%v", b)
	}
	if a := img.NRGBAAt(0, 0).A; a != 0 {
		t.Fatalf("corner alpha=%d, want transparent", a)
	}
	if c := img.NRGBAAt(32, 32); c.A != 255 || c.R == 0 {
		t.Fatalf("center=%v", c)
	}
}

func TestRenderDeterministic(t *testing.T) {
	a := render(32, 9, 10, 2)
	b := render(32, 9, 10, 2)
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("pixel byte %d differs", i)
		}
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets", "moon.png")
	if err := writePNG(path, render(16, 1, 4, 1)); err != nil {
		t.Fatalf("writePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Fatalf("decode: %v", err)
	}
}
