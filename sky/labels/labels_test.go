package labels

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"skyline/sky/orbit"
	"skyline/sky/view"
)

func star(name string, p mgl32.Vec3) orbit.Body {
	return orbit.Body{Name: name, Kind: orbit.Star, Pos: p.Normalize()}
}

func sat(name string, p mgl32.Vec3) orbit.Body {
	return orbit.Body{Name: name, Kind: orbit.Satellite, Pos: p.Normalize()}
}

func frame(hour float32) Frame {
	return Frame{
		Basis:   view.NewBasis(0, 0),
		Width:   1000,
		Height:  800,
		Hour:    hour,
		CursorX: -1000,
		CursorY: -1000,
	}
}

func TestDaytimeHidesAll(t *testing.T) {
	bodies := []orbit.Body{
		star("ahead", mgl32.Vec3{0, 0, 1}),
		sat("high", mgl32.Vec3{0, 0.5, 1}),
	}
	res := Project(frame(12), bodies, nil)
	for _, l := range res.Labels {
		if l.Visible {
			t.Fatalf("%s visible at noon", l.Name)
		}
	}
	if res.CursorHelp {
		t.Fatal("cursor help at noon")
	}
}

func TestDaytimeBoundaries(t *testing.T) {
	cases := []struct {
		hour float32
		day  bool
	}{
		{0, false}, {6, false}, {6.01, true}, {12, true}, {17.99, true}, {18, false}, {23.5, false},
	}
	for _, tc := range cases {
		if got := IsDaytime(tc.hour); got != tc.day {
			t.Fatalf("IsDaytime(%v)=%v", tc.hour, got)
		}
	}
}

func TestStarAheadAtCenter(t *testing.T) {
	res := Project(frame(0), []orbit.Body{star("ahead", mgl32.Vec3{0, 0, 1})}, nil)
	l := res.Labels[0]
	if !l.Visible {
		t.Fatal("star ahead hidden")
	}
	if math.Abs(float64(l.X-500)) > 1e-3 || math.Abs(float64(l.Y-400)) > 1e-3 {
		t.Fatalf("position=(%v,%v), want screen center", l.X, l.Y)
	}
}

func TestBehindCameraHidden(t *testing.T) {
	res := Project(frame(0), []orbit.Body{
		star("behind", mgl32.Vec3{0, 0.2, -1}),
		star("side", mgl32.Vec3{1, 0, 0}),
	}, nil)
	for _, l := range res.Labels {
		if l.Visible {
			t.Fatalf("%s visible, dot(p,f) <= 0", l.Name)
		}
	}
}

func TestLowSatelliteHidden(t *testing.T) {
	res := Project(frame(0), []orbit.Body{
		sat("low", mgl32.Vec3{0, 0.04, 1}),
		star("low star", mgl32.Vec3{0, 0.04, 1}),
	}, nil)
	if res.Labels[0].Visible {
		t.Fatal("satellite below elevation threshold visible")
	}
	if !res.Labels[1].Visible {
		t.Fatal("star at the same position should be visible")
	}
}

func TestHighlight(t *testing.T) {
	f := frame(0)
	f.CursorX, f.CursorY = 530, 430
	res := Project(f, []orbit.Body{
		star("ahead", mgl32.Vec3{0, 0, 1}),
		star("up", mgl32.Vec3{0, 1, 1}),
	}, nil)
	if !res.Labels[0].Highlighted {
		t.Fatal("label within 50px not highlighted")
	}
	if res.Labels[1].Highlighted {
		t.Fatal("far label highlighted")
	}
	if !res.CursorHelp {
		t.Fatal("cursor help not set")
	}

	f.CursorX, f.CursorY = 560, 400
	res = Project(f, []orbit.Body{star("ahead", mgl32.Vec3{0, 0, 1})}, res.Labels)
	if res.Labels[0].Highlighted || res.CursorHelp {
		t.Fatal("label 60px away highlighted")
	}
}

func TestUpIsTopOfScreen(t *testing.T) {
	res := Project(frame(0), []orbit.Body{star("up", mgl32.Vec3{0, 0.3, 1})}, nil)
	if l := res.Labels[0]; !l.Visible || l.Y >= 400 {
		t.Fatalf("label above horizon at y=%v, want above center", l.Y)
	}
}
